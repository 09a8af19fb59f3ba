package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/shared"
	tu "github.com/dunerain/vidtube/internal/testing"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	tu.WriteEnvelope(w, status, success, data, message)
}

func newManager(t *testing.T, handler http.Handler) (*Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, srv.Client(), nil)
	return NewManager(client, nil, nil, nil), srv
}

func TestBootstrap(t *testing.T) {
	t.Run("Resolves Signed In", func(t *testing.T) {
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/users/currentUser" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			writeEnvelope(w, 200, true, map[string]string{"_id": "u1", "username": "alice"}, "")
		}))

		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("bootstrap failed: %v", err)
		}
		if !m.Resolved() {
			t.Error("expected session resolved")
		}
		user, ok := m.Current()
		if !ok || user.Username != "alice" {
			t.Errorf("expected alice, got %+v", user)
		}
	})

	t.Run("Rejection Resolves Anonymous", func(t *testing.T) {
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, 401, false, nil, "unauthorized")
		}))

		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("expected anonymous resolution, got error: %v", err)
		}
		if !m.Resolved() {
			t.Error("expected session resolved")
		}
		if _, ok := m.Current(); ok {
			t.Error("expected anonymous session")
		}
	})

	t.Run("Empty Payload Resolves Anonymous", func(t *testing.T) {
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, 200, true, nil, "")
		}))

		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("expected anonymous resolution, got error: %v", err)
		}
		if !m.Resolved() {
			t.Error("expected session resolved")
		}
		if user, ok := m.Current(); ok {
			t.Errorf("expected anonymous session for empty payload, got %+v", user)
		}
		if err := m.Gate(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected gate closed for empty-payload session, got %v", err)
		}
	})

	t.Run("Transport Failure Resolves Anonymous", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		client := api.NewClient(srv.URL, srv.Client(), nil)
		srv.Close() // connection refused from here on
		m := NewManager(client, nil, nil, nil)

		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("expected anonymous resolution, got error: %v", err)
		}
		if !m.Resolved() {
			t.Error("expected session resolved despite transport failure")
		}
	})

	t.Run("Cancellation Leaves Session Unresolved", func(t *testing.T) {
		block := make(chan struct{})
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
		}))
		defer close(block)

		ctx, cancel := context.WithCancel(context.Background())
		go cancel()

		err := m.Bootstrap(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if m.Resolved() {
			t.Error("expected session still unresolved after cancellation")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("Email Identifier", func(t *testing.T) {
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["email"] != "a@b.c" || body["username"] != "" {
				t.Errorf("expected email field, got %v", body)
			}
			writeEnvelope(w, 200, true, map[string]any{
				"user": map[string]string{"_id": "u1", "username": "alice"},
			}, "")
		}))

		user, err := m.Login(context.Background(), "a@b.c", "pw")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("expected alice, got %s", user.Username)
		}
		if err := m.Gate(); err != nil {
			t.Errorf("expected gate open after login, got %v", err)
		}
	})

	t.Run("Bad Credentials", func(t *testing.T) {
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, 401, false, nil, "invalid credentials")
		}))

		_, err := m.Login(context.Background(), "alice", "wrong")
		if !errors.Is(err, shared.ErrLoginFailed) {
			t.Fatalf("expected ErrLoginFailed, got %v", err)
		}
		if _, ok := m.Current(); ok {
			t.Error("expected no session after failed login")
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("Clears Locally Even When Server Fails", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/currentUser", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, 200, true, map[string]string{"_id": "u1", "username": "alice"}, "")
		})
		mux.HandleFunc("/users/logout", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, 500, false, nil, "session store down")
		})

		cache := query.NewCache(nil)
		cache.Get(context.Background(), query.KeyVideos, func(ctx context.Context) (any, error) { return "v", nil })

		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)
		store := &fakeStore{}
		m := NewManager(api.NewClient(srv.URL, srv.Client(), nil), store, cache, nil)

		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("bootstrap failed: %v", err)
		}
		if err := m.Logout(context.Background()); err != nil {
			t.Fatalf("expected logout to succeed locally, got %v", err)
		}

		if _, ok := m.Current(); ok {
			t.Error("expected anonymous session after logout")
		}
		if !store.cleared {
			t.Error("expected cookie store cleared")
		}
		if _, ok := cache.Peek(query.KeyVideos); ok {
			t.Error("expected entity cache dropped on logout")
		}
	})
}

type fakeStore struct{ cleared bool }

func (f *fakeStore) Clear() error {
	f.cleared = true
	return nil
}

func TestGuard(t *testing.T) {
	t.Run("Refuses To Decide Before Bootstrap", func(t *testing.T) {
		m := NewManager(nil, nil, nil, nil)

		_, err := m.Guard(true)
		if !errors.Is(err, shared.ErrSessionUnresolved) {
			t.Errorf("expected ErrSessionUnresolved, got %v", err)
		}
	})

	t.Run("Decides After Bootstrap", func(t *testing.T) {
		calls := 0
		m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			writeEnvelope(w, 401, false, nil, "unauthorized")
		}))

		if err := m.Bootstrap(context.Background()); err != nil {
			t.Fatalf("bootstrap failed: %v", err)
		}

		cases := []struct {
			requiresAuth bool
			want         Decision
		}{
			{false, DecisionAllow},
			{true, DecisionRedirectLogin},
		}
		for _, tc := range cases {
			got, err := m.Guard(tc.requiresAuth)
			if err != nil {
				t.Fatalf("guard failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Guard(%v) = %v, want %v", tc.requiresAuth, got, tc.want)
			}
		}

		if calls != 1 {
			t.Errorf("expected a single identity check, got %d", calls)
		}
	})
}
