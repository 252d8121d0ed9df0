package handlers

import (
	"errors"
	"net/http"
	"strings"

	"shorty/internal/links"
	applog "shorty/internal/log"
	"shorty/internal/theme"
	"shorty/internal/views/layout"
	"shorty/internal/views/pages"
	"shorty/models"
)

const recentLinksLimit = 5

// Dashboard renders the admin landing page.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	st := requestState(r)

	var (
		totals links.Totals
		recent []models.Link
	)
	if database != nil {
		stats := links.New(database)
		var err error
		if totals, err = stats.Totals(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to load link totals", "error", err)
		}
		if recent, err = stats.Recent(r.Context(), recentLinksLimit); err != nil {
			applog.Error(r.Context(), "failed to load recent links", "error", err)
		}
	}

	page := theme.Page{Context: layout.ContextAdmin, Title: st.T("Admin interface")}
	renderPage(w, r, page, pages.Dashboard(st, totals, recent))
}

// Themes lists the installed themes.
func Themes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if themes == nil {
		http.Error(w, "themes not available", http.StatusServiceUnavailable)
		return
	}
	st := requestState(r)

	list, err := themes.Themes(r.Context(), st)
	if err != nil {
		applog.Error(r.Context(), "failed to list themes", "error", err)
		st.AddNotice(theme.NoticeError, st.T("Theme list could not be read"))
	}
	active, err := themes.ActiveTheme(r.Context(), st)
	if err != nil {
		applog.Error(r.Context(), "failed to read active theme", "error", err)
	}

	page := theme.Page{Context: layout.ContextThemes, Title: st.T("Manage Themes")}
	renderPage(w, r, page, pages.Themes(st, list, active, themes.Config().Dir))
}

// ActivateTheme switches the active theme and returns to the theme list.
func ActivateTheme(w http.ResponseWriter, r *http.Request) {
	changeTheme(w, r, true)
}

// DeactivateTheme clears the active theme and returns to the theme list.
func DeactivateTheme(w http.ResponseWriter, r *http.Request) {
	changeTheme(w, r, false)
}

func changeTheme(w http.ResponseWriter, r *http.Request, activate bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if themes == nil {
		http.Error(w, "themes not available", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	st := requestState(r)
	name := strings.TrimSpace(r.PostFormValue("theme"))

	var err error
	if activate {
		err = themes.Activate(r.Context(), st, name)
	} else {
		err = themes.Deactivate(r.Context(), st, name)
	}

	var themeErr *theme.Error
	switch {
	case err == nil && activate:
		st.AddNotice(theme.NoticeInfo, st.T("Activated theme: %s", name))
	case err == nil:
		st.AddNotice(theme.NoticeInfo, st.T("Deactivated theme: %s", name))
	case errors.As(err, &themeErr):
		applog.Info(r.Context(), "theme change refused", "theme", name, "activate", activate, "error", err)
		addNoticeOnce(st, theme.NoticeError, themeErr.Message)
	default:
		applog.Error(r.Context(), "failed to change theme", "theme", name, "activate", activate, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	flashNotices(r, st)
	redirectToThemes(w, r)
}

// addNoticeOnce skips a message the state already carries.
func addNoticeOnce(st *theme.State, level, message string) {
	for _, n := range st.Notices() {
		if n.Message == message {
			return
		}
	}
	st.AddNotice(level, message)
}
