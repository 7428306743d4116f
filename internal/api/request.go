package api

import (
	"net/http"
	"net/url"
	"strings"
)

// WantsJSON reports whether the caller is a JSON client. Form posts from the
// HTML fallback pages carry neither a JSON content type nor a JSON accept
// header; those callers get redirects and flash messages instead of bodies.
func WantsJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

const flashCookie = "flash"

// SetFlash stores a one-shot message for the HTML fallback path. The frontend
// reads and clears the cookie on next page load.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  url.QueryEscape(message),
		Path:   "/",
		MaxAge: 60,
	})
}

// RedirectWithFlash is the non-JSON adapter's answer to both success and
// failure: set the message, send the browser somewhere sensible.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	SetFlash(w, message)
	http.Redirect(w, r, target, http.StatusFound)
}
