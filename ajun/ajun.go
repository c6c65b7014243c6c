package ajun

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Limiter interface {
	RateLimiterHandler(next http.Handler) http.Handler
}

type ajun struct {
	router  chi.Router
	Handler http.Handler
}

func newMux() chi.Router {
	return chi.NewRouter()
}

func NewRouter() *ajun {
	mux := newMux()
	return &ajun{
		router:  mux,
		Handler: mux,
	}
}

// Use registra middlewares no router. Deve ser chamado antes das rotas.
func (a *ajun) Use(middlewares ...func(http.Handler) http.Handler) {
	a.router.Use(middlewares...)
}

func (a *ajun) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	a.router.HandleFunc(pattern, handler)
}

func (a *ajun) Handle(pattern string, handler http.Handler) {
	a.router.Handle(pattern, handler)
}

func (a *ajun) Get(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	a.router.Get(pattern, handler)
}

func (a *ajun) Post(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	a.router.Post(pattern, handler)
}

// RateLimiter registra o limitador como middleware, depois dos que já
// foram registrados com Use. Como Use, deve ser chamado antes das rotas.
func (a *ajun) RateLimiter(limiter Limiter) {
	a.router.Use(limiter.RateLimiterHandler)
}
