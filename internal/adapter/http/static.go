package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// contentTypes maps file extensions to their served media type. Everything
// else is served as application/octet-stream.
var contentTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// StaticFiles serves regular files below a root directory. It does not list
// directories.
type StaticFiles struct {
	root   string
	logger *slog.Logger
}

// NewStaticFiles serves files from root.
func NewStaticFiles(root string, logger *slog.Logger) *StaticFiles {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &StaticFiles{root: root, logger: logger}
}

// ContentType returns the Content-Type header value for name.
func ContentType(name string) string {
	t, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		t = "application/octet-stream"
	}
	return t + "; charset=UTF-8"
}

// ServeHTTP serves the file named by the request path. Behind http.ServeMux,
// paths containing ".." are cleaned and redirected before they get here; the
// 403 branch covers direct use of the handler.
func (s *StaticFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if name == "/" {
		name = "/index.html"
	}

	path := filepath.Join(s.root, filepath.FromSlash(name))
	if path != s.root && !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		writeText(w, http.StatusForbidden, "Forbidden")
		return
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		writeText(w, http.StatusNotFound, "Not found")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("static file open failed", "path", path, "error", err)
		writeText(w, http.StatusNotFound, "Not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", ContentType(path))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		s.logger.Debug("static file write interrupted", "path", path, "error", err)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(status)
	io.WriteString(w, body) //nolint:errcheck // client may have gone away
}
