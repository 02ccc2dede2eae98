package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Garima-149/disease-prediction2/ml"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

var templateFuncs = template.FuncMap{
	"symptomLabel": ml.SymptomLabel,
	"percent": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	},
}

// Renderer executes the page templates. With a templates directory it can
// re-parse the set when files change on disk.
type Renderer struct {
	mu      sync.RWMutex
	tmpl    *template.Template
	source  fs.FS
	logger  *zap.Logger
	watcher *fsnotify.Watcher
}

// NewRenderer parses templates from dir, or the embedded set when dir is empty.
func NewRenderer(dir string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	source, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, err
	}
	if dir != "" {
		source = os.DirFS(dir)
	}

	r := &Renderer{source: source, logger: logger}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) reload() error {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(r.source, "*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Render executes name into a buffer first so a template error never leaves a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	return nil
}

// Watch re-parses templates whenever a file in dir is written, created or removed.
// A broken edit keeps the previous template set.
func (r *Renderer) Watch(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	r.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(event.Name) != ".html" {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if err := r.reload(); err != nil {
					r.logger.Warn("template reload failed", zap.String("file", event.Name), zap.Error(err))
					continue
				}
				r.logger.Info("templates reloaded", zap.String("file", event.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("template watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

// Close stops the template watcher, if any.
func (r *Renderer) Close() error {
	if r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}

// staticHandler serves dir, or the embedded assets when dir is empty.
func staticHandler(dir string) (http.Handler, error) {
	if dir != "" {
		return http.FileServer(http.Dir(dir)), nil
	}
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return nil, err
	}
	return http.FileServer(http.FS(sub)), nil
}
