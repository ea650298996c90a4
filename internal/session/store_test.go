package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if s.Authenticated() {
		t.Error("fresh store should not be authenticated")
	}
}

func TestSetTokensPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetTokens("access", "refresh", "admin"); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}

	// A second store reading the same file sees the full session.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	snap := reopened.Snapshot()
	if snap.AccessToken != "access" || snap.RefreshToken != "refresh" {
		t.Errorf("Snapshot() = %+v, want tokens preserved", snap)
	}
	if snap.Username != "admin" || !snap.Authenticated {
		t.Errorf("Snapshot() = %+v, want authenticated admin", snap)
	}
}

func TestSetAccessTokenLeavesRefreshToken(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetTokens("old-access", "refresh", "admin"); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}
	if err := s.SetAccessToken("new-access"); err != nil {
		t.Fatalf("SetAccessToken() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.AccessToken != "new-access" {
		t.Errorf("AccessToken = %q, want new-access", snap.AccessToken)
	}
	if snap.RefreshToken != "refresh" {
		t.Errorf("RefreshToken = %q, want refresh untouched", snap.RefreshToken)
	}
	if !snap.Authenticated {
		t.Error("Authenticated flag should survive a token refresh")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetTokens("access", "refresh", "admin"); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	snap := s.Snapshot()
	if snap != (Snapshot{}) {
		t.Errorf("Snapshot() = %+v, want zero value", snap)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if reopened.Authenticated() {
		t.Error("logout should persist to disk")
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open() should fail on a corrupt session file")
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, ok := s.AccessTokenExpiry(); ok {
		t.Error("empty session should have no expiry")
	}

	// Opaque non-JWT tokens have no parseable expiry.
	if err := s.SetTokens("not-a-jwt", "refresh", "u"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.AccessTokenExpiry(); ok {
		t.Error("non-JWT token should have no expiry")
	}

	// {"alg":"none"} . {"exp":4102444800} . signature stripped; unverified
	// parse still yields the claim.
	token := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJleHAiOjQxMDI0NDQ4MDB9.x"
	if err := s.SetAccessToken(token); err != nil {
		t.Fatal(err)
	}
	exp, ok := s.AccessTokenExpiry()
	if !ok {
		t.Fatal("expected a parseable expiry")
	}
	if exp.Year() != 2100 {
		t.Errorf("expiry year = %d, want 2100", exp.Year())
	}
}
