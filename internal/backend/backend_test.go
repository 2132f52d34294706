package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/testutil"
)

func TestNew_REST(t *testing.T) {
	srv := testutil.NewTaskServer()
	defer srv.Close()
	srv.Seed("Buy milk", false)

	cfg, _ := config.New(t.TempDir())
	cfg.BackendURL = srv.URL

	svc, err := New(context.Background(), cfg, "todo/test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tasks, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("tasks = %+v", tasks)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %v", reqs)
	}
	if got := reqs[0].Header.Get("User-Agent"); got != "todo/test" {
		t.Errorf("User-Agent = %q", got)
	}
	if reqs[0].Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestNew_RESTInvalidURL(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.BackendURL = "not a url"

	_, err := New(context.Background(), cfg, "todo/test")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestNew_GoogleTasksPreflight(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.New(dir)
	cfg.Backend = config.BackendGoogleTasks

	_, err := New(context.Background(), cfg, "todo/test")
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without oauth client, got %v", err)
	}

	client := `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte(client), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = New(context.Background(), cfg, "todo/test")
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without token, got %v", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.Backend = "sqlite"

	_, err := New(context.Background(), cfg, "todo/test")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
