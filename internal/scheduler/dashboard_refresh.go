// Package scheduler contém os serviços de agendamento do dashboard
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights-dashboard/internal/config"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding"
)

type DashboardRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Timeout      time.Duration
}

// DashboardRefreshService remonta o dashboard periodicamente, mantendo o cache
// aquecido e registrando os insights de cada execução
type DashboardRefreshService struct {
	scheduler           *gocron.Scheduler
	builder             dashboarding.Builder
	config              DashboardRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastOutcome         string
	lastInsights        []string
}

func NewDashboardRefreshService(builder dashboarding.Builder, cfg *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule: cfg.DashboardRefresh.CronSchedule, // Default: a cada 15 minutos
		SyncEnabled:  cfg.DashboardRefresh.Enabled,      // Default: desabilitado
		Timeout:      cfg.DashboardRefresh.Timeout,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
	}).Info("Configuração do agendador de atualização do dashboard carregada")

	return &DashboardRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		builder:   builder,
		config:    refreshConfig,
	}
}

func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do dashboard desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do dashboard")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Refresh(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização do dashboard")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do dashboard: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de atualização do dashboard")
		s.scheduler.Stop()
	}()

	return nil
}

// Refresh monta o dashboard uma vez. Execuções concorrentes são ignoradas.
func (s *DashboardRefreshService) Refresh(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do dashboard já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	outcome := dashboarding.OutcomeSuccess
	var insights []string
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastOutcome = outcome
		if insights != nil {
			s.lastInsights = insights
		}
		s.syncMutex.Unlock()
	}()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logrus.Info("Iniciando atualização do dashboard")

	dashboard, err := s.builder.Build(ctx)
	if err != nil {
		outcome = dashboarding.Outcome(err)
		return err
	}

	insights = dashboard.Insights
	for i, insight := range insights {
		logrus.WithField("position", i+1).Info(insight)
	}

	logrus.WithFields(logrus.Fields{
		"records":  dashboard.RecordCount,
		"insights": len(insights),
	}).Info("Atualização do dashboard concluída")

	return nil
}

// TriggerManualSync dispara uma atualização fora do agendamento
func (s *DashboardRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do dashboard já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do dashboard")
	go func() {
		if err := s.Refresh(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do dashboard")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	insights := make([]string, len(s.lastInsights))
	copy(insights, s.lastInsights)

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_outcome":           s.lastOutcome,
		"last_insights":          insights,
	}
}
