package httphandler

import (
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// sameMachineOrigin reports whether an Origin header value names a page
// served from this machine. A missing header (curl, scripts, the healthcheck)
// is allowed; "null" and any non-loopback host are not.
func sameMachineOrigin(origin string) bool {
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// originMiddleware refuses requests sent by pages on other sites. Browsers
// attach Origin to cross-site POSTs, including the text/plain ones that skip
// the CORS preflight, so a page the user visits cannot store its own token
// or add items through the local API.
func originMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sameMachineOrigin(r.Header.Get("Origin")) {
			writeError(w, http.StatusForbidden, "cross-origin requests are not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isJSONRequest reports whether the request declares a JSON body. Forms and
// text/plain bodies are what a cross-site page can send without a preflight.
func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
