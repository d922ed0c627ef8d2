package middleware

import (
	"net/http"
	"time"
)

// RequestObserver recebe as métricas de cada requisição
type RequestObserver interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// Metrics registra método, status e duração das requisições de uma rota.
// pattern é o caminho registrado no router (ex: /v1/cron/:type/run).
func Metrics(observer RequestObserver, pattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			observer.ObserveRequest(r.Method, pattern, lrw.statusCode, time.Since(started))
		})
	}
}
