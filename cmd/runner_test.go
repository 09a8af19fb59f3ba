package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/dunerain/vidtube/internal/api"
	"github.com/dunerain/vidtube/internal/query"
	"github.com/dunerain/vidtube/internal/shared"
	tu "github.com/dunerain/vidtube/internal/testing"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
		"message": message,
	})
}

// newBackend serves a small fixture API. signedIn controls whether the
// identity check succeeds.
func newBackend(t *testing.T, signedIn bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/currentUser", func(w http.ResponseWriter, r *http.Request) {
		if !signedIn {
			writeEnvelope(w, 401, false, nil, "unauthorized")
			return
		}
		writeEnvelope(w, 200, true, map[string]string{"_id": "u1", "username": "alice", "fullName": "Alice A"}, "")
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, map[string]any{
			"docs": []map[string]any{
				{"_id": "v1", "title": "Go in anger", "views": 1500, "owner": map[string]any{"username": "alice"}},
			},
		}, "")
	})
	mux.HandleFunc("/videos/v1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, map[string]any{
			"_id": "v1", "title": "Go in anger", "views": 1500, "isLiked": true,
			"owner": map[string]any{"_id": "u2", "username": "alice"},
		}, "")
	})
	mux.HandleFunc("/comments/v1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			writeEnvelope(w, 201, true, map[string]any{"_id": "c9", "content": body["content"]}, "")
			return
		}
		writeEnvelope(w, 200, true, map[string]any{"docs": []any{}}, "")
	})
	mux.HandleFunc("/likes/toggle/v/v1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, nil, "")
	})
	mux.HandleFunc("/tweets", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, []any{}, "")
	})
	mux.HandleFunc("/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, map[string]any{"totalSubscribers": 12, "totalViews": 3400}, "")
	})
	mux.HandleFunc("/dashboard/videos", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, map[string]any{"videos": []any{}}, "")
	})
	mux.HandleFunc("/playlist/user/u1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, []any{}, "")
	})
	mux.HandleFunc("/users/coverImage", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			writeEnvelope(w, 405, false, nil, "method not allowed")
			return
		}
		writeEnvelope(w, 200, true, map[string]string{"_id": "u1", "username": "alice"}, "")
	})
	mux.HandleFunc("/likes/videos", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, []map[string]any{
			{"_id": "v7", "title": "Kept for later", "views": 40},
		}, "")
	})
	mux.HandleFunc("/tweets/user/u1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, true, []any{}, "")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRunner(t *testing.T, signedIn bool) (*Runner, *bytes.Buffer) {
	t.Helper()

	srv := newBackend(t, signedIn)
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Client: api.NewClient(srv.URL, srv.Client(), nil),
		Output: output,
	})
	return runner, output
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "vidtube", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"vidtube"}, args...))
}

func TestNewRunner(t *testing.T) {
	t.Run("nil options use defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil {
			t.Error("expected default config")
		}
		if runner.logger == nil {
			t.Error("expected default logger")
		}
		if runner.output != os.Stdout {
			t.Error("expected output to default to os.Stdout")
		}
		if runner.cache == nil || runner.dispatcher == nil || runner.session == nil {
			t.Error("expected cache, dispatcher, and session wired")
		}
	})
}

func TestVideosListCommand(t *testing.T) {
	runner, output := newTestRunner(t, false)

	if err := run(t, runner, "videos", "list"); err != nil {
		t.Fatalf("videos list failed: %v", err)
	}

	out := output.String()
	for _, want := range []string{"Go in anger", "alice", "1.5K"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestAuthWhoami(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		runner, output := newTestRunner(t, false)

		if err := run(t, runner, "auth", "whoami"); err != nil {
			t.Fatalf("whoami failed: %v", err)
		}
		if !strings.Contains(output.String(), "Not signed in") {
			t.Errorf("expected anonymous report, got %s", output.String())
		}
	})

	t.Run("Signed In", func(t *testing.T) {
		runner, output := newTestRunner(t, true)

		if err := run(t, runner, "auth", "whoami"); err != nil {
			t.Fatalf("whoami failed: %v", err)
		}
		if !strings.Contains(output.String(), "@alice") {
			t.Errorf("expected @alice, got %s", output.String())
		}
	})
}

func TestGuardedCommandsRefuseSignedOut(t *testing.T) {
	runner, _ := newTestRunner(t, false)

	err := run(t, runner, "dashboard", "stats")
	if !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLikeVideoDirectionFromCachedFlag(t *testing.T) {
	runner, output := newTestRunner(t, true)

	// The fixture video comes back with isLiked: true, so the toggle must
	// report the unlike direction.
	if err := run(t, runner, "like", "video", "v1"); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !strings.Contains(output.String(), "Unliked") {
		t.Errorf("expected Unliked, got %s", output.String())
	}
}

func TestAccountCover(t *testing.T) {
	runner, output := newTestRunner(t, true)

	// The signed-in user's channel profile must go stale when the cover
	// image changes.
	runner.cache.Get(context.Background(), query.KeyChannel("alice"), func(ctx context.Context) (any, error) {
		return "profile", nil
	})

	coverPath := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(coverPath, []byte("img"), 0o644); err != nil {
		t.Fatalf("failed to write fixture file: %v", err)
	}

	if err := run(t, runner, "account", "cover", "--file", coverPath); err != nil {
		t.Fatalf("account cover failed: %v", err)
	}
	if !strings.Contains(output.String(), "Cover image updated") {
		t.Errorf("expected confirmation, got %s", output.String())
	}
	if _, ok := runner.cache.Peek(query.KeyChannel("alice")); ok {
		t.Error("expected channel profile invalidated after cover update")
	}
}

func TestVideosLiked(t *testing.T) {
	runner, output := newTestRunner(t, true)

	if err := run(t, runner, "videos", "liked"); err != nil {
		t.Fatalf("videos liked failed: %v", err)
	}
	if !strings.Contains(output.String(), "Kept for later") {
		t.Errorf("expected liked video listed, got %s", output.String())
	}
}

func TestCommentsAdd(t *testing.T) {
	runner, output := newTestRunner(t, true)

	if err := run(t, runner, "comments", "add", "-m", "first!", "v1"); err != nil {
		t.Fatalf("comments add failed: %v", err)
	}
	if !strings.Contains(output.String(), "c9") {
		t.Errorf("expected created comment id, got %s", output.String())
	}
}

func TestCacheWarm(t *testing.T) {
	t.Run("Anonymous warms public feed only", func(t *testing.T) {
		runner, output := newTestRunner(t, false)

		if err := run(t, runner, "cache", "warm"); err != nil {
			t.Fatalf("cache warm failed: %v", err)
		}
		if !strings.Contains(output.String(), "Warmed 2") {
			t.Errorf("expected 2 warmed entries, got %s", output.String())
		}
	})

	t.Run("Signed in warms own entities too", func(t *testing.T) {
		runner, output := newTestRunner(t, true)

		if err := run(t, runner, "cache", "warm"); err != nil {
			t.Fatalf("cache warm failed: %v", err)
		}
		if !strings.Contains(output.String(), "Warmed 6") {
			t.Errorf("expected 6 warmed entries, got %s", output.String())
		}
	})
}

func TestWriteJSON(t *testing.T) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output})

	if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}

	result := output.String()
	if !strings.Contains(result, `"key": "value"`) {
		t.Errorf("expected formatted JSON, got %s", result)
	}
	if !strings.HasSuffix(result, "\n") {
		t.Error("expected trailing newline")
	}

	t.Run("Write failure surfaces", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writeJSON(map[string]string{"k": "v"}, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}
