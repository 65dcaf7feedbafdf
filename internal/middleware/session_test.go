package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoshop/console/internal/models"
)

// fakeSessions serves a fixed session, or none.
type fakeSessions struct {
	session *models.Session
}

func (f *fakeSessions) Session() (models.Session, bool) {
	if f.session == nil {
		return models.Session{}, false
	}
	return *f.session, true
}

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantUser != "" {
			u, ok := SessionUserFromContext(r.Context())
			if !ok || u.Username != wantUser {
				t.Errorf("expected user %q in context, got %+v (ok=%v)", wantUser, u, ok)
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionAuth_LoginExempt(t *testing.T) {
	mw := SessionAuth(&fakeSessions{})
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rec := httptest.NewRecorder()

	mw(okHandler(t, "")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected login to pass without a session, got %d", rec.Code)
	}
}

func TestSessionAuth_NoSession(t *testing.T) {
	mw := SessionAuth(&fakeSessions{})
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rec := httptest.NewRecorder()

	mw(okHandler(t, "")).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a session, got %d", rec.Code)
	}
}

func TestSessionAuth_WrongToken(t *testing.T) {
	sessions := &fakeSessions{session: &models.Session{
		User:  models.User{Username: "admin"},
		Token: "good-token",
	}}
	mw := SessionAuth(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	mw(okHandler(t, "")).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong token, got %d", rec.Code)
	}
}

func TestSessionAuth_ValidToken(t *testing.T) {
	sessions := &fakeSessions{session: &models.Session{
		User:  models.User{ID: "1", Username: "admin"},
		Token: "good-token",
	}}
	mw := SessionAuth(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	mw(okHandler(t, "admin")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for valid token, got %d", rec.Code)
	}
}
