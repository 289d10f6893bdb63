package router

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	PreviewCookieName = "sf_preview"
	PreviewParam      = "preview"
	PreviewMaxAge     = 6 * time.Hour
)

// PreviewCookie returns the cookie op implied by the “preview” query
// parameter, or nil when the parameter is absent or unrecognised.
//
//	1, true               → set sf_preview=1 for six hours
//	0, false, off, clear  → expire sf_preview now
func PreviewCookie(rawQuery string) *http.Cookie {
	if rawQuery == "" {
		return nil
	}
	// ParseQuery keeps every pair it could decode, so a bad pair elsewhere
	// in the query does not hide the preview flag.
	q, _ := url.ParseQuery(rawQuery)
	if !q.Has(PreviewParam) {
		return nil
	}

	switch strings.ToLower(q.Get(PreviewParam)) {
	case "1", "true":
		return &http.Cookie{
			Name:     PreviewCookieName,
			Value:    "1",
			Path:     "/",
			HttpOnly: false,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(PreviewMaxAge / time.Second),
		}
	case "0", "false", "off", "clear":
		return &http.Cookie{
			Name:     PreviewCookieName,
			Value:    "",
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		}
	}
	return nil
}

// PreviewEnabled reports whether the request carries an active preview
// cookie.
func PreviewEnabled(r *http.Request) bool {
	c, err := r.Cookie(PreviewCookieName)
	return err == nil && c.Value == "1"
}
