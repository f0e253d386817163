package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/commands"
	"staffattendance/backend/internal/pkg/config"
	"staffattendance/backend/internal/pkg/repository/postgresql/dbtest"
)

const (
	adminPassword = "admin-secret"
	staffPassword = "staff123"
)

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type server struct {
	t       *testing.T
	handler http.Handler
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.NewDatabase(t)
	if err := commands.SeedAdmin(context.Background(), db, "admin", adminPassword); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}

	a, err := auth.New("test-key", time.Hour, auth.NewMemoryStore())
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}

	cfg := &config.Config{}
	cfg.Auth.CookieName = "attendance_session"
	cfg.Seed.DefaultStaffPassword = staffPassword

	r := NewRouter(web.NewApp(), db, a, cfg)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	return &server{t: t, handler: r.App}
}

func (s *server) do(method, path, token string, body interface{}) (int, response) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var resp response
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			s.t.Fatalf("%s %s: decoding %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

func (s *server) must(method, path, token string, body interface{}, want int, into interface{}) {
	s.t.Helper()

	code, resp := s.do(method, path, token, body)
	if code != want {
		s.t.Fatalf("%s %s: got status %d (%s), want %d", method, path, code, resp.Error, want)
	}
	if into != nil {
		if err := json.Unmarshal(resp.Data, into); err != nil {
			s.t.Fatalf("%s %s: decoding data: %v", method, path, err)
		}
	}
}

func (s *server) signIn(username, password string) string {
	s.t.Helper()

	var data struct {
		Token string `json:"token"`
	}
	s.must(http.MethodPost, "/api/v1/sign-in", "", map[string]string{"username": username, "password": password}, http.StatusOK, &data)
	if data.Token == "" {
		s.t.Fatalf("sign-in %s: empty token", username)
	}
	return data.Token
}

func (s *server) addStaff(token, id, name string) {
	s.t.Helper()
	s.must(http.MethodPost, "/api/v1/staff", token, map[string]string{"id": id, "name": name, "department": "Ops"}, http.StatusCreated, nil)
}

func TestSundayReadFillsWeekend(t *testing.T) {
	s := newServer(t)
	admin := s.signIn("admin", adminPassword)
	s.addStaff(admin, "E1", "Alice")

	var day map[string]string
	s.must(http.MethodGet, "/api/v1/attendance?date=2024-01-07", admin, nil, http.StatusOK, &day)

	if day["E1"] != "weekend" {
		t.Fatalf("got %v, want E1 weekend", day)
	}
}

func TestHolidayReachesLateStaff(t *testing.T) {
	s := newServer(t)
	admin := s.signIn("admin", adminPassword)
	s.addStaff(admin, "E1", "Alice")
	s.addStaff(admin, "E2", "Bob")

	var created struct {
		Marked int64 `json:"marked"`
	}
	s.must(http.MethodPost, "/api/v1/holidays", admin, map[string]string{"date": "2024-01-10", "name": "Founders Day"}, http.StatusCreated, &created)
	if created.Marked != 2 {
		t.Fatalf("got %d marked, want 2", created.Marked)
	}

	s.addStaff(admin, "E3", "Carol")

	var day map[string]string
	s.must(http.MethodGet, "/api/v1/attendance?date=2024-01-10", admin, nil, http.StatusOK, &day)
	for _, id := range []string{"E1", "E2", "E3"} {
		if day[id] != "holiday" {
			t.Fatalf("got %v, want %s on holiday", day, id)
		}
	}
}

func TestDoubleMarkRemoves(t *testing.T) {
	s := newServer(t)
	admin := s.signIn("admin", adminPassword)
	s.addStaff(admin, "E1", "Alice")

	mark := map[string]string{"staffId": "E1", "date": "2024-01-09", "status": "present"}

	var first, second struct {
		Status  string `json:"status"`
		Removed bool   `json:"removed"`
	}
	s.must(http.MethodPost, "/api/v1/attendance", admin, mark, http.StatusOK, &first)
	if first.Status != "present" || first.Removed {
		t.Fatalf("first mark: got %+v", first)
	}
	s.must(http.MethodPost, "/api/v1/attendance", admin, mark, http.StatusOK, &second)
	if !second.Removed {
		t.Fatalf("second mark: got %+v, want removed", second)
	}

	var day map[string]string
	s.must(http.MethodGet, "/api/v1/attendance?date=2024-01-09", admin, nil, http.StatusOK, &day)
	if _, ok := day["E1"]; ok {
		t.Fatalf("got %v, want E1 unmarked", day)
	}
}

func TestDeleteStaffEndsSessions(t *testing.T) {
	s := newServer(t)
	admin := s.signIn("admin", adminPassword)
	s.addStaff(admin, "E1", "Alice")
	s.must(http.MethodPost, "/api/v1/attendance", admin, map[string]string{"staffId": "E1", "date": "2024-01-09", "status": "absent"}, http.StatusOK, nil)

	employee := s.signIn("e1", staffPassword)
	s.must(http.MethodGet, "/api/v1/me", employee, nil, http.StatusOK, nil)

	s.must(http.MethodDelete, "/api/v1/staff/E1", admin, nil, http.StatusOK, nil)

	if code, _ := s.do(http.MethodGet, "/api/v1/me", employee, nil); code != http.StatusUnauthorized {
		t.Fatalf("deleted staff session: got %d, want 401", code)
	}

	var day map[string]string
	s.must(http.MethodGet, "/api/v1/attendance?date=2024-01-09", admin, nil, http.StatusOK, &day)
	if len(day) != 0 {
		t.Fatalf("got %v, want no rows after delete", day)
	}

	s.must(http.MethodGet, "/api/v1/staff/E1", admin, nil, http.StatusNotFound, nil)
}

func TestAccessGate(t *testing.T) {
	s := newServer(t)
	admin := s.signIn("admin", adminPassword)
	s.addStaff(admin, "E1", "Alice")
	s.addStaff(admin, "E2", "Bob")

	if code, _ := s.do(http.MethodGet, "/api/v1/staff", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous: got %d, want 401", code)
	}

	employee := s.signIn("e1", staffPassword)

	code, resp := s.do(http.MethodPost, "/api/v1/attendance", employee, map[string]string{"staffId": "E1", "date": "2024-01-09", "status": "present"})
	if code != http.StatusForbidden || resp.Success {
		t.Fatalf("employee mark: got %d %+v, want 403", code, resp)
	}

	var list struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	s.must(http.MethodGet, "/api/v1/staff", employee, nil, http.StatusOK, &list)
	if len(list.Results) != 1 || list.Results[0].ID != "E1" {
		t.Fatalf("employee roster: got %+v, want only E1", list.Results)
	}
	s.must(http.MethodGet, "/api/v1/staff/E2", employee, nil, http.StatusNotFound, nil)

	s.must(http.MethodPost, "/api/v1/logout", employee, nil, http.StatusOK, nil)
	if code, _ := s.do(http.MethodGet, "/api/v1/me", employee, nil); code != http.StatusUnauthorized {
		t.Fatalf("after logout: got %d, want 401", code)
	}
}

func TestSignInRejectsBadPassword(t *testing.T) {
	s := newServer(t)

	code, resp := s.do(http.MethodPost, "/api/v1/sign-in", "", map[string]string{"username": "admin", "password": "wrong"})
	if code != http.StatusUnauthorized || resp.Success || resp.Error == "" {
		t.Fatalf("got %d %+v, want 401 with error", code, resp)
	}
}

func TestMonthlyExports(t *testing.T) {
	s := newServer(t)
	admin := s.signIn("admin", adminPassword)
	s.addStaff(admin, "E1", "Alice")

	for _, tc := range []struct {
		path        string
		contentType string
	}{
		{"/api/v1/reports/monthly/excel?year=2024&month=0", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"/api/v1/reports/monthly/pdf?year=2024&month=0", "application/pdf"},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+admin)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: got %d, want 200", tc.path, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != tc.contentType {
			t.Fatalf("%s: got content type %q, want %q", tc.path, got, tc.contentType)
		}
		if rec.Body.Len() == 0 {
			t.Fatalf("%s: empty body", tc.path)
		}
	}
}
