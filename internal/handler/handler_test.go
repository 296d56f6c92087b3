package handler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wachplan-dev/wachplan/backend/internal/config"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/repository"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 10

	h, err := NewHandler(cfg, repository.NewRepository(cfg, db), nil, nil)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, mock
}

func loginAs(t *testing.T, h *Handler, userID uuid.UUID) *http.Cookie {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   userID.String(),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	require.NoError(t, err)

	return &http.Cookie{Name: "__wachplan_token", Value: ss}
}

func expectMembership(mock sqlmock.Sqlmock, userID, stationID uuid.UUID, role domain.Role) {
	rows := sqlmock.NewRows([]string{"id", "station_id", "division_id", "role", "created_at"}).
		AddRow(uuid.New().String(), stationID.String(), nil, string(role), time.Now())
	mock.ExpectQuery(`FROM memberships WHERE user_id =`).WithArgs(userID).WillReturnRows(rows)
}

func doRequest(t *testing.T, h *Handler, method, target, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return rec, resp
}

func TestShiftMutationsRequireAdmin(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
	}{
		{"generation", http.MethodPost, "/shifts/generate"},
		{"manual creation", http.MethodPost, "/shifts"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := newTestHandler(t)
			userID := uuid.New()
			expectMembership(mock, userID, uuid.New(), domain.RoleEditor)

			rec, resp := doRequest(t, h, tc.method, tc.target, "{}", loginAs(t, h, userID))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, "insufficient permissions", resp.Message)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateShiftTemplateAcceptsFreeFormLabel(t *testing.T) {
	h, mock := newTestHandler(t)
	userID := uuid.New()
	stationID := uuid.New()

	expectMembership(mock, userID, stationID, domain.RoleAdmin)
	mock.ExpectQuery(`INSERT INTO shift_templates`).
		WithArgs(stationID, "Tagdienst", "07:00", "19:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(uuid.New().String(), 1))

	body := `{"label":"Tagdienst","startTime":"07:00","endTime":"19:00"}`
	rec, resp := doRequest(t, h, http.MethodPost, "/shift-templates", body, loginAs(t, h, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Tagdienst", data["label"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertScheduleCycleRejectsZeroSwitchHours(t *testing.T) {
	h, mock := newTestHandler(t)
	userID := uuid.New()

	expectMembership(mock, userID, uuid.New(), domain.RoleAdmin)

	body := fmt.Sprintf(`{"orderDivisionIds":[%q],"switchHours":0}`, uuid.New())
	rec, resp := doRequest(t, h, http.MethodPut, "/schedule-cycle", body, loginAs(t, h, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "SwitchHours")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptJoinRequestAssignsRoleAndDivision(t *testing.T) {
	h, mock := newTestHandler(t)
	adminID := uuid.New()
	stationID := uuid.New()
	applicantID := uuid.New()
	requestID := uuid.New()
	divisionID := uuid.New()

	expectMembership(mock, adminID, stationID, domain.RoleAdmin)

	jrRows := sqlmock.NewRows([]string{"user_id", "station_id", "status", "created_at", "name", "email"}).
		AddRow(applicantID.String(), stationID.String(), string(domain.JoinRequestPending), time.Now(), "Lena Weber", "lena.weber@feuerwehr.example")
	mock.ExpectQuery(`FROM join_requests jr\s+JOIN users u ON u\.id = jr\.user_id\s+WHERE jr\.id =`).
		WithArgs(requestID).WillReturnRows(jrRows)

	divRows := sqlmock.NewRows([]string{"station_id", "name", "color", "created_at", "version"}).
		AddRow(stationID.String(), "Wachabteilung B", "#2563eb", time.Now(), 1)
	mock.ExpectQuery(`FROM divisions WHERE id =`).WithArgs(divisionID).WillReturnRows(divRows)

	mock.ExpectQuery(`INSERT INTO memberships`).
		WithArgs(applicantID, stationID, divisionID, domain.RoleEditor).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New().String(), time.Now()))

	mock.ExpectExec(`UPDATE join_requests SET status =`).
		WithArgs(string(domain.JoinRequestApproved), requestID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := fmt.Sprintf(`{"role":"EDITOR","divisionId":%q}`, divisionID)
	target := "/station/join-requests/" + requestID.String() + "/accept"
	rec, resp := doRequest(t, h, http.MethodPost, target, body, loginAs(t, h, adminID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "EDITOR", data["role"])
	assert.Equal(t, divisionID.String(), data["divisionId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMyAccount(t *testing.T) {
	expectUser := func(mock sqlmock.Sqlmock, userID uuid.UUID) {
		rows := sqlmock.NewRows([]string{"email", "name", "password_hash", "created_at", "version"}).
			AddRow("finn.koch@feuerwehr.example", "Finn Koch", "hash", time.Now(), 1)
		mock.ExpectQuery(`FROM users WHERE id =`).WithArgs(userID).WillReturnRows(rows)
	}

	t.Run("removes an account without a membership", func(t *testing.T) {
		h, mock := newTestHandler(t)
		userID := uuid.New()

		expectUser(mock, userID)
		mock.ExpectQuery(`FROM memberships WHERE user_id =`).WithArgs(userID).WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`DELETE FROM users WHERE id =`).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))

		rec, resp := doRequest(t, h, http.MethodDelete, "/my-info", "", loginAs(t, h, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses the station admin", func(t *testing.T) {
		h, mock := newTestHandler(t)
		userID := uuid.New()

		expectUser(mock, userID)
		expectMembership(mock, userID, uuid.New(), domain.RoleAdmin)

		rec, resp := doRequest(t, h, http.MethodDelete, "/my-info", "", loginAs(t, h, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "hand over station administration")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removes the membership of a regular member", func(t *testing.T) {
		h, mock := newTestHandler(t)
		userID := uuid.New()
		membershipID := uuid.New()

		expectUser(mock, userID)
		rows := sqlmock.NewRows([]string{"id", "station_id", "division_id", "role", "created_at"}).
			AddRow(membershipID.String(), uuid.New().String(), nil, string(domain.RoleViewer), time.Now())
		mock.ExpectQuery(`FROM memberships WHERE user_id =`).WithArgs(userID).WillReturnRows(rows)
		mock.ExpectExec(`DELETE FROM memberships WHERE id =`).WithArgs(membershipID).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM users WHERE id =`).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))

		rec, resp := doRequest(t, h, http.MethodDelete, "/my-info", "", loginAs(t, h, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
