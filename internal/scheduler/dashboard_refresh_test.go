package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-dashboard/internal/config"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding/mocks"
	"github.com/vfg2006/sales-insights-dashboard/pkg/log"
	"go.uber.org/mock/gomock"
)

func newTestService(builder dashboarding.Builder, enabled bool) *DashboardRefreshService {
	log.SetupTestLogger()

	return NewDashboardRefreshService(builder, &config.Config{
		DashboardRefresh: config.DashboardRefresh{
			CronSchedule: "*/15 * * * *",
			Enabled:      enabled,
			Timeout:      time.Second,
		},
	})
}

func TestDashboardRefreshService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Guarda os insights da última execução", func(t *testing.T) {
		builder := mocks.NewMockBuilder(ctrl)
		builder.EXPECT().Build(gomock.Any()).Return(&domain.Dashboard{
			Insights:    []string{"Canal líder: Google (R$ 100.00); atenção ao canal Email."},
			RecordCount: 10,
		}, nil)

		service := newTestService(builder, false)
		require.NoError(t, service.Refresh(context.Background()))

		status := service.GetStatus()
		assert.Equal(t, dashboarding.OutcomeSuccess, status["last_outcome"])
		assert.Equal(t, []string{"Canal líder: Google (R$ 100.00); atenção ao canal Email."}, status["last_insights"])
		assert.Equal(t, false, status["sync_running"])
		assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
	})

	t.Run("Erro do pipeline é registrado no status", func(t *testing.T) {
		builder := mocks.NewMockBuilder(ctrl)
		buildErr := domain.NewSourceUnavailableError(nil, "data.csv")
		builder.EXPECT().Build(gomock.Any()).Return(nil, buildErr)

		service := newTestService(builder, false)
		err := service.Refresh(context.Background())

		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
		assert.Equal(t, dashboarding.OutcomeSourceUnavailable, service.GetStatus()["last_outcome"])
	})

	t.Run("Execução concorrente é ignorada", func(t *testing.T) {
		builder := mocks.NewMockBuilder(ctrl)
		service := newTestService(builder, false)
		service.syncRunning = true

		require.NoError(t, service.Refresh(context.Background()))
	})

	t.Run("Aplica timeout ao contexto", func(t *testing.T) {
		builder := mocks.NewMockBuilder(ctrl)
		builder.EXPECT().Build(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.Dashboard, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return &domain.Dashboard{}, nil
		})

		service := newTestService(builder, false)
		require.NoError(t, service.Refresh(context.Background()))
	})
}

func TestDashboardRefreshService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := mocks.NewMockBuilder(ctrl)
	done := make(chan struct{})
	builder.EXPECT().Build(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.Dashboard, error) {
		defer close(done)
		return &domain.Dashboard{Insights: []string{"ok"}}, nil
	})

	service := newTestService(builder, false)
	service.TriggerManualSync()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("atualização manual não executou")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, time.Second, 10*time.Millisecond)
}

func TestDashboardRefreshService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockBuilder(ctrl), false)
	assert.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}

func TestDashboardRefreshService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockBuilder(ctrl), true)
	service.config.CronSchedule = "não é cron"

	assert.Error(t, service.Start(context.Background()))
}
