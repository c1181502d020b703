// Package module mounts self-contained HTTP handlers under path prefixes.
// Each module sees request paths relative to its prefix and carries its own
// middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/JaimeStill/lexicon/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System

	once    sync.Once
	handler http.Handler
}

// New creates a Module mounted at prefix, e.g. "/api" or "/api/v1".
func New(prefix string, router http.Handler) (*Module, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}, nil
}

// ValidatePrefix reports whether prefix is usable as a mount point: rooted,
// without a trailing slash, empty segments, or pattern wildcards.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if prefix == "/" || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("module prefix must not end with /: %s", prefix)
	}
	if strings.Contains(prefix, "//") {
		return fmt.Errorf("module prefix contains an empty segment: %s", prefix)
	}
	if strings.ContainsAny(prefix, "{}") {
		return fmt.Errorf("module prefix cannot contain wildcards: %s", prefix)
	}
	return nil
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack. Middleware added after the
// first request is served has no effect.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		m.handler = m.middleware.Apply(m.router)
	})
	return m.handler
}

// Matches reports whether path falls under the module's prefix.
func (m *Module) Matches(path string) bool {
	if !strings.HasPrefix(path, m.prefix) {
		return false
	}
	return len(path) == len(m.prefix) || path[len(m.prefix)] == '/'
}

// Serve strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	r := new(http.Request)
	*r = *req
	r.URL = new(url.URL)
	*r.URL = *req.URL
	r.URL.Path = path
	r.URL.RawPath = ""
	return r
}
