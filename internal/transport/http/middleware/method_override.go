package middleware

import (
	"net/http"
	"strings"
)

const methodOverrideField = "_method"

// MethodOverride lets HTML forms reach PUT and DELETE routes by posting a
// _method field. It wraps the engine because gin picks the route before any
// gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isForm(r) {
			switch m := strings.ToUpper(strings.TrimSpace(r.PostFormValue(methodOverrideField))); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
