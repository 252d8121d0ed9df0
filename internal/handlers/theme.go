package handlers

import (
	"bytes"
	"encoding/gob"
	"net/http"

	"github.com/a-h/templ"

	applog "shorty/internal/log"
	"shorty/internal/theme"
	"shorty/internal/views/layout"
)

const sessionFlashNoticesKey = "theme:notices"

func init() {
	// scs gob-encodes session values.
	gob.Register([]theme.Notice{})
}

// WithThemeState prepares the theme state of each request: it restores
// notices flashed by the previous request, queues the core assets and loads
// the active theme.
func WithThemeState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if themes == nil {
			next.ServeHTTP(w, r)
			return
		}
		st := themes.NewState(catalog.Printer(requestLocale(r)))
		for _, n := range popFlash(r) {
			st.AddNotice(n.Level, n.Message)
		}
		if err := themes.Init(r.Context(), st); err != nil {
			applog.Error(r.Context(), "failed to initialise theme", "error", err)
		}
		next.ServeHTTP(w, r.WithContext(theme.WithState(r.Context(), st)))
	})
}

// requestState returns the request's theme state, creating one when the
// middleware did not run.
func requestState(r *http.Request) *theme.State {
	if st := theme.StateFrom(r.Context()); st != nil {
		return st
	}
	printer := catalog.Printer(requestLocale(r))
	if themes == nil {
		return theme.NewState(nil, nil, printer)
	}
	return themes.NewState(printer)
}

// renderPage writes a full admin page. Rendering goes to a buffer so a
// failure can still produce a clean error response.
func renderPage(w http.ResponseWriter, r *http.Request, page theme.Page, content templ.Component) {
	if themes == nil {
		http.Error(w, "themes not available", http.StatusServiceUnavailable)
		return
	}
	st := requestState(r)

	var buf bytes.Buffer
	if err := layout.Document(themes, st, page, content).Render(r.Context(), &buf); err != nil {
		applog.Error(r.Context(), "failed to render page", "context", page.Context, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		applog.Debug(r.Context(), "failed to write page", "error", err)
	}
}

// flashNotices keeps the state's notices for the next request.
func flashNotices(r *http.Request, st *theme.State) {
	notices := st.Notices()
	if sessionManager == nil || len(notices) == 0 {
		return
	}
	sessionManager.Put(r.Context(), sessionFlashNoticesKey, notices)
}

func popFlash(r *http.Request) []theme.Notice {
	if sessionManager == nil {
		return nil
	}
	notices, _ := sessionManager.Pop(r.Context(), sessionFlashNoticesKey).([]theme.Notice)
	return notices
}
