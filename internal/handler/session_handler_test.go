package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

func sessionContext(method, target, body string, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

func TestSessionHandlerCreatePassesActorAndFlexibleIDs(t *testing.T) {
	srv := &fakeSessionSrv{}
	h := NewSessionHandler(srv)
	body := `{"ueId":"3","classeId":2,"salleId":"1","jour":"Lundi","plageHoraire":"08:00 - 10:00","date":"2025-09-01"}`
	c, rec := sessionContext(http.MethodPost, "/sessions", body, &models.JWTClaims{UserID: 10, Role: models.RoleTeacher})

	h.Create(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), srv.lastActor.UserID)
	assert.Equal(t, models.RoleTeacher, srv.lastActor.Role)
	assert.Equal(t, int64(3), srv.lastReq.TeachingUnitID.Int64())
	assert.Equal(t, int64(1), srv.lastReq.RoomID.Int64())
	assert.Equal(t, "08:00 - 10:00", srv.lastReq.TimeSlot)
	assert.Contains(t, rec.Body.String(), `"ueId":3`)
}

func TestSessionHandlerCreateSurfacesSchedulingErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"occupied", appErrors.Clone(appErrors.ErrRoomOccupied, "room already occupied"), http.StatusBadRequest, "ROOM_OCCUPIED"},
		{"capacity", appErrors.Clone(appErrors.ErrCapacityExceeded, "room too small (30 seats)"), http.StatusBadRequest, "CAPACITY_EXCEEDED"},
		{"forbidden", appErrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"internal", appErrors.Clone(appErrors.ErrInternal, "failed to create session"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSessionHandler(&fakeSessionSrv{err: tc.err})
			body := `{"ueId":1,"classeId":1,"salleId":1,"jour":"Lundi","plageHoraire":"08:00-10:00","date":"2025-09-01"}`
			c, rec := sessionContext(http.MethodPost, "/sessions", body, &models.JWTClaims{UserID: 1, Role: models.RoleAdmin})

			h.Create(c)

			assert.Equal(t, tc.status, rec.Code)
			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestSessionHandlerCreateRejectsMalformedBody(t *testing.T) {
	srv := &fakeSessionSrv{}
	h := NewSessionHandler(srv)

	c, rec := sessionContext(http.MethodPost, "/sessions", `{"ueId":"abc"}`, nil)
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)

	c, rec = sessionContext(http.MethodPost, "/sessions", `{`, nil)
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerUpdateAndDelete(t *testing.T) {
	srv := &fakeSessionSrv{}
	h := NewSessionHandler(srv)

	c, rec := sessionContext(http.MethodPut, "/sessions/9", `{"ueId":1,"classeId":1,"salleId":2,"jour":"Mardi","plageHoraire":"10:00-12:00","date":"2025-09-02"}`, nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Update(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), srv.lastID)

	c, rec = sessionContext(http.MethodDelete, "/sessions/9", "", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Delete(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "session deleted")

	srv.err = appErrors.Clone(appErrors.ErrNotFound, "session not found")
	c, rec = sessionContext(http.MethodDelete, "/sessions/404", "", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandlerRejectsNonNumericID(t *testing.T) {
	srv := &fakeSessionSrv{}
	h := NewSessionHandler(srv)
	c, rec := sessionContext(http.MethodGet, "/classes/x/sessions", "", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.ListForClass(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, srv.lastID)
}

func TestSessionHandlerListForClass(t *testing.T) {
	srv := &fakeSessionSrv{}
	h := NewSessionHandler(srv)
	c, rec := sessionContext(http.MethodGet, "/classes/4/sessions", "", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.ListForClass(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), srv.lastID)
	assert.Contains(t, string(decode(t, rec).Data), `"classeId":4`)
}
