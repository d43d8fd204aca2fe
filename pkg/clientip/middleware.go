package clientip

import "net/http"

// New returns a middleware storing the resolved client address in the
// request context. With no headers given DefaultHeaders are used; pass a
// header list only when the service runs behind proxies that set them.
func New(headers ...string) func(http.Handler) http.Handler {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := Resolve(r, headers...)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ip)))
		})
	}
}

// Middleware is New with DefaultHeaders.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}
