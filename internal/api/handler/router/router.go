package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-insights-dashboard/pkg/middleware"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.pending = append(router.pending, routes...)
		}
	}

	// WithObserver registra métricas de todas as rotas usando o caminho registrado
	WithObserver = func(observer middleware.RequestObserver) ConfigRouter {
		return func(router *Router) {
			router.observer = observer
		}
	}

	WithNotFound = func(handler http.Handler) ConfigRouter {
		return func(router *Router) {
			router.router.NotFound = handler
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Lista de middlewares específicos para esta rota
}

type Router struct {
	router   *httprouter.Router
	observer middleware.RequestObserver
	pending  []Route
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	// Rotas registradas depois das opções, para que o observer valha para todas
	router.AddRoutes(router.pending...)
	router.pending = nil

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes adiciona rotas ao router com seus middlewares específicos
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		var handler http.Handler = route.Handler

		// Aplicar middlewares específicos da rota, do último para o primeiro
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			middleware := route.Middlewares[i]
			handler = middleware(handler)
		}

		if r.observer != nil {
			handler = middleware.Metrics(r.observer, route.Path)(handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
