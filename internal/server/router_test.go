package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter("", "")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected /healthz without an option store to return 503, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterServesCoreAssets(t *testing.T) {
	router := newRouter("", "")
	for _, path := range []string{"/assets/css/style.min.css", "/assets/css/fonts.min.css", "/assets/js/admin.min.js"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path+"?v=1", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected %s to return 200, got %d", path, rr.Code)
		}
	}
}

func TestNewRouterServesThemeFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "blue"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blue", "theme.css"), []byte("body{color:blue}"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	router := newRouter(dir, "/user/themes/")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user/themes/blue/theme.css", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "color:blue") {
		t.Fatalf("expected theme stylesheet, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestNewRouterRedirectsRootToAdmin(t *testing.T) {
	router := newRouter("", "")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/admin" {
		t.Fatalf("expected redirect to /admin, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestNewRouterServesThemesBelowConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "blue"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blue", "theme.css"), []byte("body{color:blue}"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}

	router := newRouter(dir, themesMount("http://sho.rt", "http://sho.rt/static/skins"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/skins/blue/theme.css", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "color:blue") {
		t.Fatalf("expected theme stylesheet below the configured path, got %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user/themes/blue/theme.css", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected default path to be unmounted, got %d", rr.Code)
	}
}

func TestThemesMount(t *testing.T) {
	tests := []struct {
		name   string
		site   string
		themes string
		want   string
	}{
		{name: "default", site: "http://sho.rt", themes: "http://sho.rt/user/themes", want: "/user/themes/"},
		{name: "trailing slash", site: "http://sho.rt", themes: "http://sho.rt/skins/", want: "/skins/"},
		{name: "host case", site: "http://sho.rt", themes: "http://SHO.RT/skins", want: "/skins/"},
		{name: "relative", site: "http://sho.rt", themes: "/cdn/themes", want: "/cdn/themes/"},
		{name: "other host", site: "http://sho.rt", themes: "https://cdn.example/themes", want: ""},
		{name: "site root", site: "http://sho.rt", themes: "http://sho.rt", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := themesMount(tt.site, tt.themes); got != tt.want {
				t.Fatalf("themesMount(%q, %q) = %q, want %q", tt.site, tt.themes, got, tt.want)
			}
		})
	}
}
