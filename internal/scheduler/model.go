package scheduler

import "time"

// Parameters control the materialization window. Now is injected so the
// generator stays a pure function of its inputs in tests.
type Parameters struct {
	WindowDays int              // number of calendar days to materialize
	Now        func() time.Time // defaults to time.Now
}

const DefaultWindowDays = 30
