// Package dashboarding executa o pipeline carga → agregação → gráficos → insights
package dashboarding

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/aggregating"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/insighting"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/presenting"
	"github.com/vfg2006/sales-insights-dashboard/pkg/log"
)

// Resultados de uma montagem, usados nas métricas
const (
	OutcomeSuccess           = "success"
	OutcomeCacheHit          = "cache_hit"
	OutcomeSourceUnavailable = "source_unavailable"
	OutcomeParseError        = "parse_error"
	OutcomeDataError         = "data_error"
	OutcomeError             = "error"
)

type Service struct {
	loader      RecordLoader
	options     insighting.Options
	source      string
	fingerprint Fingerprinter
	metrics     MetricsRecorder
	now         func() time.Time

	cacheMutex  sync.Mutex
	cached      *domain.Dashboard
	cachedPrint string
}

func NewService(loader RecordLoader, options insighting.Options, source string) *Service {
	return &Service{
		loader:  loader,
		options: options,
		source:  source,
		now:     time.Now,
	}
}

// WithCache reaproveita o último dashboard enquanto a impressão digital da fonte não mudar
func (s *Service) WithCache(fingerprint Fingerprinter) *Service {
	s.fingerprint = fingerprint
	return s
}

func (s *Service) WithMetrics(metrics MetricsRecorder) *Service {
	s.metrics = metrics
	return s
}

// Build monta o dashboard. Erros do pipeline são retornados sem alteração.
func (s *Service) Build(ctx context.Context) (*domain.Dashboard, error) {
	started := s.now()
	logger := log.ForContext(ctx).WithField("source", s.source)

	fingerprint := s.currentFingerprint(ctx)
	if dashboard := s.fromCache(fingerprint); dashboard != nil {
		logger.WithField("dashboard_fingerprint", fingerprint).Debug("dashboarding: fonte inalterada, usando cache")
		s.observe(OutcomeCacheHit, started)
		return dashboard, nil
	}

	dashboard, err := s.build(ctx, fingerprint)
	if err != nil {
		logger.WithError(err).Error("dashboarding: erro ao montar dashboard")
		s.observe(Outcome(err), started)
		return nil, err
	}

	s.store(fingerprint, dashboard)
	s.observe(OutcomeSuccess, started)

	logger.WithFields(log.Fields{
		"records":            dashboard.RecordCount,
		"dashboard_insights": len(dashboard.Insights),
		"duration_ms":        s.now().Sub(started).Milliseconds(),
	}).Info("dashboarding: dashboard montado")

	return dashboard, nil
}

func (s *Service) build(ctx context.Context, fingerprint string) (*domain.Dashboard, error) {
	records, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	aggregates, err := aggregating.Aggregate(records)
	if err != nil {
		return nil, err
	}

	trendChart, channelChart, correlationChart := presenting.Charts(aggregates)

	return &domain.Dashboard{
		TrendChart:       trendChart,
		ChannelChart:     channelChart,
		CorrelationChart: correlationChart,
		Insights:         insighting.Generate(aggregates.Trend, aggregates.Channels, aggregates.Correlation, s.options),
		Aggregates:       aggregates,
		Source:           s.source,
		Fingerprint:      fingerprint,
		RecordCount:      len(records),
		GeneratedAt:      s.now(),
	}, nil
}

// currentFingerprint retorna vazio quando o cache está desligado ou a fonte
// não pôde ser identificada; nesse caso a montagem segue sem cache.
func (s *Service) currentFingerprint(ctx context.Context) string {
	if s.fingerprint == nil {
		return ""
	}

	fingerprint, err := s.fingerprint.Fingerprint(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("dashboarding: não foi possível calcular impressão digital da fonte")
		return ""
	}
	return fingerprint
}

func (s *Service) fromCache(fingerprint string) *domain.Dashboard {
	if fingerprint == "" {
		return nil
	}

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if s.cached != nil && s.cachedPrint == fingerprint {
		return s.cached
	}
	return nil
}

func (s *Service) store(fingerprint string, dashboard *domain.Dashboard) {
	if fingerprint == "" {
		return
	}

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	s.cached = dashboard
	s.cachedPrint = fingerprint
}

func (s *Service) observe(outcome string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveBuild(outcome, s.now().Sub(started))
}

// Outcome classifica um erro do pipeline para as métricas
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrSourceUnavailable):
		return OutcomeSourceUnavailable
	case errors.Is(err, domain.ErrParse):
		return OutcomeParseError
	case errors.Is(err, domain.ErrData):
		return OutcomeDataError
	default:
		return OutcomeError
	}
}
