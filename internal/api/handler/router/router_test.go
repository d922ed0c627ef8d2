package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	observations []observation
}

func (o *recordingObserver) ObserveRequest(method, path string, status int, _ time.Duration) {
	o.observations = append(o.observations, observation{method, path, status})
}

func TestRouter(t *testing.T) {
	observer := &recordingObserver{}
	var order []string

	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(
		WithRoutes(Route{
			Path:   "/v1/cron/:type/run",
			Method: http.MethodPost,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, httprouter.ParamsFromContext(r.Context()).ByName("type"))
				w.WriteHeader(http.StatusAccepted)
			}),
			Middlewares: []func(http.Handler) http.Handler{tag("primeiro"), tag("segundo")},
		}),
		WithObserver(observer),
		WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})),
	)

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/cron/dashboard-refresh/run", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{"primeiro", "segundo", "dashboard-refresh"}, order)
	require.Len(t, observer.observations, 1)
	assert.Equal(t, observation{http.MethodPost, "/v1/cron/:type/run", http.StatusAccepted}, observer.observations[0])

	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nao-existe", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
