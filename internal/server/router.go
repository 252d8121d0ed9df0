package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"shorty/internal/handlers"
	applog "shorty/internal/log"
)

//go:embed assets
var embeddedAssets embed.FS

func coreAssets() http.Handler {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func admin(h http.HandlerFunc) http.Handler {
	return handlers.RequireAuthentication(handlers.WithThemeState(h))
}

// themesMount returns the path below which the themes directory is served,
// taken from themesURL. It is empty when themesURL points at another host,
// since the files are then served by someone else.
func themesMount(siteURL, themesURL string) string {
	themes, err := url.Parse(themesURL)
	if err != nil {
		return ""
	}
	if themes.Host != "" {
		site, err := url.Parse(siteURL)
		if err != nil || !strings.EqualFold(site.Host, themes.Host) {
			return ""
		}
	}
	p := path.Clean("/" + themes.Path)
	if p == "/" {
		return ""
	}
	return p + "/"
}

// newRouter registers the routes. themesDir, when set, is served below
// themesPrefix.
func newRouter(themesDir, themesPrefix string) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.Handle("/login", handlers.WithThemeState(http.HandlerFunc(handlers.Login)))
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.HandleFunc("/logout", handlers.Logout)
	applog.Debug(context.Background(), "route registered", "path", "/logout")
	mux.Handle("/admin", admin(handlers.Dashboard))
	mux.Handle("/admin/themes", admin(handlers.Themes))
	mux.Handle("/admin/themes/activate", admin(handlers.ActivateTheme))
	mux.Handle("/admin/themes/deactivate", admin(handlers.DeactivateTheme))
	applog.Debug(context.Background(), "route registered", "path", "/admin", "protected", true)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusFound)
	})
	mux.Handle("/assets/", http.StripPrefix("/assets/", coreAssets()))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	if themesDir != "" && themesPrefix != "" {
		mux.Handle(themesPrefix, http.StripPrefix(themesPrefix, http.FileServer(http.Dir(themesDir))))
		applog.Debug(context.Background(), "route registered", "path", themesPrefix, "dir", themesDir)
	}
	return mux
}
