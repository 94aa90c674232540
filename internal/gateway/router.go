package gateway

import (
	"net/http"
)

// Router wraps http.ServeMux with the middleware every route shares
type Router struct {
	mux         *http.ServeMux
	middlewares []func(http.Handler) http.Handler
}

// NewRouter creates a new router; middlewares run outermost first
func NewRouter(middlewares ...func(http.Handler) http.Handler) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		middlewares: middlewares,
	}
}

// Mux returns the underlying http.ServeMux
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// Handle registers a handler for the given pattern
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers a handler function for the given pattern
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Handler returns the mux wrapped in the router's middleware
func (r *Router) Handler() http.Handler {
	var h http.Handler = r.mux
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	return h
}
