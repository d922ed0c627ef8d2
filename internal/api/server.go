package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights-dashboard/internal/api/handler"
	"github.com/vfg2006/sales-insights-dashboard/internal/api/handler/router"
	"github.com/vfg2006/sales-insights-dashboard/internal/api/view"
	"github.com/vfg2006/sales-insights-dashboard/internal/config"
	"github.com/vfg2006/sales-insights-dashboard/internal/scheduler"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-dashboard/pkg/metrics"
	"github.com/vfg2006/sales-insights-dashboard/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	builder dashboarding.Builder,
	metrics *metrics.Metrics,
	refreshService *scheduler.DashboardRefreshService,
) (*Server, error) {
	renderer, err := view.NewRenderer(config.Dashboard.PlotlyURL)
	if err != nil {
		return nil, err
	}

	cronServices := handler.CronJobServices{}
	if refreshService != nil {
		cronServices.DashboardRefreshService = refreshService
	}

	rt := router.New(
		router.WithObserver(metrics),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Rota não encontrada", r.URL.Path)
		})),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Dashboard(builder, renderer)...),
		router.WithRoutes(handler.Metrics(metrics.Handler())...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
