package handler

type ContextKey string

var (
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	MembershipCtx    ContextKey = "membership"
	MemberCtx        ContextKey = "member"
	JoinRequestCtx   ContextKey = "joinRequest"
	DivisionCtx      ContextKey = "division"
	PersonCtx        ContextKey = "person"
	VehicleCtx       ContextKey = "vehicle"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	ShiftCtx         ContextKey = "shift"
)
