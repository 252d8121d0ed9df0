package handlers

import "net/http"

// Request and response headers of htmx boosted navigation.
const (
	hxRequest  = "HX-Request"
	hxBoosted  = "HX-Boosted"
	hxRedirect = "HX-Redirect"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get(hxRequest) == "true" || r.Header.Get(hxBoosted) == "true"
}

// redirectTo sends the browser to path after a form post. htmx would follow
// a plain 303 inside the swapped fragment, so boosted requests get a full
// navigation through HX-Redirect instead.
func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Add("Vary", hxRequest)
	if isHTMX(r) {
		w.Header().Set(hxRedirect, path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/login")
}

func redirectToAdmin(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/admin")
}

// redirectToThemes reloads the theme list. A theme change swaps the
// stylesheet and the render steps, so the page is never patched in place.
func redirectToThemes(w http.ResponseWriter, r *http.Request) {
	redirectTo(w, r, "/admin/themes")
}
