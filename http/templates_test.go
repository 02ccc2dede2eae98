package http

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRendererFromDirectoryReloads(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	if err := os.WriteFile(page, []byte(`v1 {{.Title}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	renderer, err := NewRenderer(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer renderer.Close()
	if err := renderer.Watch(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(page, []byte(`v2 {{.Title}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		w := httptest.NewRecorder()
		// A reload can land between truncate and write, leaving an empty template.
		err := renderer.Render(w, 200, "index.html", pageData{Title: "Home"})
		if err == nil && strings.Contains(w.Body.String(), "v2 Home") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("template not reloaded, body %q", w.Body.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestRendererUnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := httptest.NewRecorder()
	if err := renderer.Render(w, 200, "missing.html", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
	if w.Body.Len() != 0 {
		t.Fatal("nothing should be written on render failure")
	}
}

func TestNewRendererRejectsBrokenTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(`{{if}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRenderer(dir, nil); err == nil {
		t.Fatal("expected parse error")
	}
}
