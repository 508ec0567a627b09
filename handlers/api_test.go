package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"callcenter/analytics"
	"callcenter/attendance"
	"callcenter/middleware"
	"callcenter/models"
	"callcenter/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 1, 25, 12, 0, 0, 0, time.Local)

type testServer struct {
	t      *testing.T
	store  *memStore
	auth   *middleware.Auth
	api    *API
	router http.Handler

	admin *models.User
	deo   *models.User
	agent *models.User
	other *models.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, session.NewDenylist(nil))
}

func newTestServerWith(t *testing.T, denylist *session.Denylist) *testServer {
	t.Helper()
	log := zap.NewNop()
	store := newMemStore()
	auth := middleware.NewAuth("test-secret", time.Hour, store, denylist, log)
	marks := attendance.NewService(store, log).WithClock(func() time.Time { return testNow })
	api := NewAPI(store, auth, analytics.NewEngine(analytics.Options{}), marks, 30000, log)

	clockAt := func() time.Time { return testNow }
	api.Reports.now = clockAt
	api.Analytics.now = clockAt
	api.Finances.now = clockAt

	router := chi.NewRouter()
	router.Mount("/api", api.Routes(auth))

	ts := &testServer{t: t, store: store, auth: auth, api: api, router: router}
	ts.admin = ts.addUser(1, "admin", models.RoleAdmin, "Admin")
	ts.deo = ts.addUser(2, "deo", models.RoleDEO, "Data Entry")
	ts.agent = ts.addUser(3, "8004", models.RoleAgent, "Hassam Sheikh")
	ts.other = ts.addUser(4, "8005", models.RoleAgent, "Agent Smith")
	return ts
}

func (ts *testServer) addUser(id uint, username string, role models.Role, name string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("8004"), bcrypt.MinCost)
	require.NoError(ts.t, err)
	user := &models.User{ID: id, Username: username, Password: string(hashed), Role: role, Name: name, Location: models.LocationOnsite}
	ts.store.users[id] = user
	return user
}

func (ts *testServer) addReport(r models.Report) models.Report {
	r.ID = ts.store.id()
	if r.Location == "" {
		r.Location = models.LocationOnsite
	}
	copied := r
	ts.store.reports[r.ID] = &copied
	return r
}

func (ts *testServer) addAttendance(a models.Attendance) models.Attendance {
	a.ID = ts.store.id()
	copied := a
	ts.store.attendance[a.ID] = &copied
	return a
}

// do sends a request as user, or anonymously when user is nil.
func (ts *testServer) do(method, path string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	ts.t.Helper()
	token := ""
	if user != nil {
		token = ts.token(user)
	}
	return ts.doToken(method, path, body, token)
}

func (ts *testServer) token(user *models.User) string {
	ts.t.Helper()
	token, _, err := ts.auth.GenerateToken(user)
	require.NoError(ts.t, err)
	return token
}

func (ts *testServer) doToken(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(ts.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
