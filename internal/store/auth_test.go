package store

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

func newTestAuthStore(t *testing.T) (*AuthStore, *UserStore, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	users, err := NewUserStore(context.Background(), kv.NewMemory(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewUserStore failed: %v", err)
	}
	auth, err := NewAuthStore(context.Background(), mem, users, zap.NewNop())
	if err != nil {
		t.Fatalf("NewAuthStore failed: %v", err)
	}
	return auth, users, mem
}

func boolPtr(v bool) *bool { return &v }

func TestLogin_Success(t *testing.T) {
	auth, _, _ := newTestAuthStore(t)

	session, err := auth.Login("admin", "anything")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.User.Username != "admin" {
		t.Errorf("unexpected session user: %+v", session.User)
	}
	if !session.Settings.SidebarOpen {
		t.Errorf("expected sidebar to default open")
	}
	if session.Token == "" {
		t.Errorf("expected a session token")
	}

	got, ok := auth.Session()
	if !ok || got.Token != session.Token {
		t.Errorf("expected the established session to be current")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	auth, _, _ := newTestAuthStore(t)

	_, err := auth.Login("nobody", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, ok := auth.Session(); ok {
		t.Errorf("expected no session after failed login")
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	auth, users, _ := newTestAuthStore(t)

	u := users.Add(UserInput{Username: "parked", Role: models.RoleTechnician, Active: false})
	if _, err := auth.Login(u.Username, "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	auth, _, _ := newTestAuthStore(t)

	if _, err := auth.Login("admin", ""); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	auth.Logout()

	if _, ok := auth.Session(); ok {
		t.Errorf("expected session cleared after logout")
	}
}

func TestSession_SurvivesRestart(t *testing.T) {
	auth, users, mem := newTestAuthStore(t)

	session, err := auth.Login("admin", "")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	auth.Flush()

	again, err := NewAuthStore(context.Background(), mem, users, zap.NewNop())
	if err != nil {
		t.Fatalf("rehydration failed: %v", err)
	}
	got, ok := again.Session()
	if !ok {
		t.Fatalf("expected session to survive restart")
	}
	if got.Token != session.Token || got.User.Username != "admin" {
		t.Errorf("unexpected rehydrated session: %+v", got)
	}
}

func TestUpdateSettings(t *testing.T) {
	auth, _, _ := newTestAuthStore(t)

	if err := auth.UpdateSettings(models.SettingsPatch{SidebarOpen: boolPtr(false)}); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession with nobody logged in, got %v", err)
	}

	if _, err := auth.Login("admin", ""); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := auth.UpdateSettings(models.SettingsPatch{SidebarOpen: boolPtr(false)}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	session, _ := auth.Session()
	if session.Settings.SidebarOpen {
		t.Errorf("expected sidebar closed after update")
	}
}

func TestUpdateSettings_RememberedAcrossLogins(t *testing.T) {
	auth, _, _ := newTestAuthStore(t)

	auth.Login("admin", "")
	auth.UpdateSettings(models.SettingsPatch{SidebarOpen: boolPtr(false)})
	auth.Logout()

	session, err := auth.Login("admin", "")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if session.Settings.SidebarOpen {
		t.Errorf("expected stored settings to override the default on re-login")
	}
}

func TestUpdateSettings_DoesNotTouchDirectory(t *testing.T) {
	auth, users, _ := newTestAuthStore(t)

	auth.Login("admin", "")
	auth.UpdateSettings(models.SettingsPatch{SidebarOpen: boolPtr(false)})

	// The directory record carries no settings and must stay untouched.
	u, ok := users.FindActiveByUsername("admin", "")
	if !ok {
		t.Fatalf("admin vanished from directory")
	}
	if u.Username != "admin" || !u.Active {
		t.Errorf("directory record changed: %+v", u)
	}
}
