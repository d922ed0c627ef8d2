package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-insights-dashboard/internal/api/view"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-dashboard/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DashboardPage responde a página HTML com os três gráficos e os insights
func DashboardPage(builder dashboarding.Builder, renderer *view.Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dashboard, err := builder.Build(r.Context())
		if err != nil {
			code, message := errorCode(err)
			status := apiErrors.StatusFor(code)

			logger.WithError(err).WithField("status_code", status).Error("dashboard: erro ao montar página")

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			if err := renderer.Error(w, status, code, message); err != nil {
				logger.WithError(err).Error("dashboard: erro ao renderizar página de erro")
			}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.Dashboard(w, dashboard); err != nil {
			logger.WithError(err).Error("dashboard: erro ao renderizar página")
		}
	})
}

// GetDashboard retorna o payload completo em JSON
func GetDashboard(builder dashboarding.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		dashboard, err := builder.Build(r.Context())
		if err != nil {
			code, message := errorCode(err)
			logger.WithError(err).Error("dashboard: erro ao montar payload")
			apiErrors.WriteError(w, code, message, err.Error())
			return
		}

		logger.WithFields(log.Fields{
			"records":            dashboard.RecordCount,
			"dashboard_insights": len(dashboard.Insights),
		}).Debug("dashboard: payload montado")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(dashboard); err != nil {
			logger.WithError(err).Error("dashboard: erro ao codificar resposta")
		}
	})
}

// errorCode traduz o erro do pipeline para o código da API
func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		return apiErrors.ErrSourceUnavailable, "Fonte de dados indisponível"
	case errors.Is(err, domain.ErrParse):
		return apiErrors.ErrParse, "A fonte de dados contém valores ilegíveis"
	case errors.Is(err, domain.ErrData):
		return apiErrors.ErrInsufficientData, "Dados insuficientes para montar o dashboard"
	default:
		return apiErrors.ErrInternalServer, "Erro interno do servidor"
	}
}
