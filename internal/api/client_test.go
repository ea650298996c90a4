package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/whattoeat/client_layer/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open("")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestClient(t *testing.T, baseURL string, sessions *session.Store) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, Sessions: sessions})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRejectsBadConfig(t *testing.T) {
	sessions := newTestStore(t)
	if _, err := New(Config{BaseURL: "", Sessions: sessions}); err == nil {
		t.Error("New() with empty BaseURL should fail")
	}
	if _, err := New(Config{BaseURL: "not a url", Sessions: sessions}); err == nil {
		t.Error("New() with invalid BaseURL should fail")
	}
	if _, err := New(Config{BaseURL: "http://localhost:8000"}); err == nil {
		t.Error("New() without Sessions should fail")
	}
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(User{ID: "u1"})
	}))
	defer srv.Close()

	sessions := newTestStore(t)
	if err := sessions.SetTokens("tok", "ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client := newTestClient(t, srv.URL, sessions)

	if _, err := client.Users().Me(context.Background()); err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok")
	}
}

func TestRefreshRetryOnce(t *testing.T) {
	var meCalls, refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if meCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer fresh" {
			t.Errorf("replay Authorization = %q, want refreshed token", got)
		}
		json.NewEncoder(w).Encode(User{ID: "u1"})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken != "ref" {
			t.Errorf("refresh body = %+v, err = %v", body, err)
		}
		json.NewEncoder(w).Encode(RefreshResponse{AccessToken: "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := newTestStore(t)
	if err := sessions.SetTokens("stale", "ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client := newTestClient(t, srv.URL, sessions)

	me, err := client.Users().Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if me.ID != "u1" {
		t.Errorf("ID = %q, want u1", me.ID)
	}
	if got := meCalls.Load(); got != 2 {
		t.Errorf("request attempts = %d, want 2", got)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if snap := sessions.Snapshot(); snap.AccessToken != "fresh" || snap.RefreshToken != "ref" {
		t.Errorf("session after refresh = %+v", snap)
	}
}

func TestSecondUnauthorizedPropagates(t *testing.T) {
	var meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RefreshResponse{AccessToken: "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := newTestStore(t)
	if err := sessions.SetTokens("stale", "ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client := newTestClient(t, srv.URL, sessions)

	_, err := client.Users().Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Me() error = %v, want APIError 401", err)
	}
	// Exactly one replay, never a refresh loop.
	if got := meCalls.Load(); got != 2 {
		t.Errorf("request attempts = %d, want 2", got)
	}
}

func TestRefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := newTestStore(t)
	if err := sessions.SetTokens("stale", "expired-ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client := newTestClient(t, srv.URL, sessions)

	_, err := client.Users().Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Me() error = %v, want ErrSessionExpired", err)
	}
	if sessions.Authenticated() {
		t.Error("session should be cleared after a failed refresh")
	}
}

func TestMissingRefreshTokenFailsFast(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv.URL, newTestStore(t))
	_, err := client.Users().Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Me() error = %v, want ErrSessionExpired", err)
	}
	if refreshCalls.Load() != 0 {
		t.Error("refresh endpoint should not be hit without a refresh token")
	}
}

func TestLogoutDuringRefreshAbandonsReplay(t *testing.T) {
	var meCalls atomic.Int32
	sessions := newTestStore(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		// The user logs out while the refresh is in flight.
		if err := sessions.Logout(); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode(RefreshResponse{AccessToken: "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	if err := sessions.SetTokens("stale", "ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client := newTestClient(t, srv.URL, sessions)

	_, err := client.Users().Me(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Me() error = %v, want ErrSessionExpired", err)
	}
	if got := meCalls.Load(); got != 1 {
		t.Errorf("request attempts = %d, want 1 (no replay after logout)", got)
	}
}

func TestErrorMessageShapes(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"detail":"Recipe not found"}`, "Recipe not found"},
		{`{"detail":{"field":"title"}}`, `{"field":"title"}`},
		{`{"message":"bad input"}`, "bad input"},
		{`plain text`, "plain text"},
	}
	for _, tc := range cases {
		if got := errorMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("errorMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestAPIErrorFromBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Recipe not found"}`))
	}))
	defer srv.Close()

	sessions := newTestStore(t)
	if err := sessions.SetTokens("tok", "ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client := newTestClient(t, srv.URL, sessions)

	_, err := client.Recipes().Get(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Recipe not found" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestLoginAdminStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/admin" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(AdminLoginResponse{
			AccessToken: "acc", RefreshToken: "ref", Username: "admin",
		})
	}))
	defer srv.Close()

	sessions := newTestStore(t)
	client := newTestClient(t, srv.URL, sessions)

	if _, err := client.Auth().LoginAdmin(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("LoginAdmin() error = %v", err)
	}
	snap := sessions.Snapshot()
	if snap.AccessToken != "acc" || snap.RefreshToken != "ref" || !snap.Authenticated {
		t.Errorf("session = %+v, want stored login", snap)
	}
}
