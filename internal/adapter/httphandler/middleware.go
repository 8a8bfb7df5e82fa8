package httphandler

import "net/http"

const sessionHeader = "X-Session-Id"

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// requireSession guards the cart and checkout routes. The engine never
// mints sessions, the caller supplies the identity.
func requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(sessionHeader) == "" {
			http.Error(w, "missing session id", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func sessionID(r *http.Request) string {
	return r.Header.Get(sessionHeader)
}
