package dashboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/dashboarding/mocks"
	"github.com/vfg2006/sales-insights-dashboard/internal/usecases/insighting"
	"go.uber.org/mock/gomock"
)

func sampleRecords() []domain.Record {
	values := []struct {
		month   time.Month
		channel string
		revenue int64
		spend   int64
	}{
		{time.January, "A", 100, 10},
		{time.February, "A", 100, 10},
		{time.March, "B", 100, 20},
		{time.April, "B", 400, 40},
	}

	records := make([]domain.Record, 0, len(values))
	for _, v := range values {
		date := time.Date(2024, v.month, 1, 0, 0, 0, 0, time.UTC)
		period := domain.PeriodOf(date)
		records = append(records, domain.Record{
			Date:     date,
			Period:   period,
			Month:    period.Label(),
			Channel:  v.channel,
			Revenue:  decimal.NullDecimal{Decimal: decimal.NewFromInt(v.revenue), Valid: true},
			AdsSpend: decimal.NullDecimal{Decimal: decimal.NewFromInt(v.spend), Valid: true},
		})
	}
	return records
}

func TestService_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Monta o dashboard completo", func(t *testing.T) {
		loader := mocks.NewMockRecordLoader(ctrl)
		metrics := mocks.NewMockMetricsRecorder(ctrl)

		loader.EXPECT().Load(gomock.Any()).Return(sampleRecords(), nil)
		metrics.EXPECT().ObserveBuild(OutcomeSuccess, gomock.Any())

		service := NewService(loader, insighting.DefaultOptions(), "data.csv").WithMetrics(metrics)

		dashboard, err := service.Build(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "data.csv", dashboard.Source)
		assert.Equal(t, 4, dashboard.RecordCount)
		assert.NotNil(t, dashboard.TrendChart)
		assert.NotNil(t, dashboard.ChannelChart)
		assert.NotNil(t, dashboard.CorrelationChart)
		require.NotEmpty(t, dashboard.Insights)
		assert.Equal(t, "Receita recente está acelerando 100.0% vs média anterior.", dashboard.Insights[0])
		assert.Equal(t, []string{"Jan/2024", "Feb/2024", "Mar/2024", "Apr/2024"}, dashboard.Aggregates.Trend.Labels())
	})

	t.Run("Propaga erro tipado da carga", func(t *testing.T) {
		loader := mocks.NewMockRecordLoader(ctrl)
		metrics := mocks.NewMockMetricsRecorder(ctrl)

		loadErr := domain.NewParseError(errors.New("bad date"), "data.csv linha 3")
		loader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)
		metrics.EXPECT().ObserveBuild(OutcomeParseError, gomock.Any())

		service := NewService(loader, insighting.DefaultOptions(), "data.csv").WithMetrics(metrics)

		dashboard, err := service.Build(context.Background())
		assert.Nil(t, dashboard)
		assert.Same(t, loadErr, err)
	})

	t.Run("Correlação sem pares é erro de dados", func(t *testing.T) {
		loader := mocks.NewMockRecordLoader(ctrl)

		records := sampleRecords()
		for i := range records {
			records[i].AdsSpend = decimal.NullDecimal{}
		}
		loader.EXPECT().Load(gomock.Any()).Return(records, nil)

		_, err := NewService(loader, insighting.DefaultOptions(), "data.csv").Build(context.Background())
		assert.ErrorIs(t, err, domain.ErrData)
	})
}

func TestService_BuildCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Reaproveita enquanto a impressão digital não muda", func(t *testing.T) {
		loader := mocks.NewMockRecordLoader(ctrl)
		fingerprint := mocks.NewMockFingerprinter(ctrl)
		metrics := mocks.NewMockMetricsRecorder(ctrl)

		gomock.InOrder(
			fingerprint.EXPECT().Fingerprint(gomock.Any()).Return("abc", nil),
			loader.EXPECT().Load(gomock.Any()).Return(sampleRecords(), nil),
			metrics.EXPECT().ObserveBuild(OutcomeSuccess, gomock.Any()),
			fingerprint.EXPECT().Fingerprint(gomock.Any()).Return("abc", nil),
			metrics.EXPECT().ObserveBuild(OutcomeCacheHit, gomock.Any()),
			fingerprint.EXPECT().Fingerprint(gomock.Any()).Return("def", nil),
			loader.EXPECT().Load(gomock.Any()).Return(sampleRecords(), nil),
			metrics.EXPECT().ObserveBuild(OutcomeSuccess, gomock.Any()),
		)

		service := NewService(loader, insighting.DefaultOptions(), "data.csv").
			WithCache(fingerprint).
			WithMetrics(metrics)

		first, err := service.Build(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", first.Fingerprint)

		second, err := service.Build(context.Background())
		require.NoError(t, err)
		assert.Same(t, first, second)

		third, err := service.Build(context.Background())
		require.NoError(t, err)
		assert.NotSame(t, first, third)
		assert.Equal(t, "def", third.Fingerprint)
	})

	t.Run("Falha na impressão digital segue sem cache", func(t *testing.T) {
		loader := mocks.NewMockRecordLoader(ctrl)
		fingerprint := mocks.NewMockFingerprinter(ctrl)

		fingerprint.EXPECT().Fingerprint(gomock.Any()).Return("", errors.New("stat failed")).Times(2)
		loader.EXPECT().Load(gomock.Any()).Return(sampleRecords(), nil).Times(2)

		service := NewService(loader, insighting.DefaultOptions(), "data.csv").WithCache(fingerprint)

		first, err := service.Build(context.Background())
		require.NoError(t, err)
		second, err := service.Build(context.Background())
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: OutcomeSuccess},
		{err: domain.NewSourceUnavailableError(nil, "x"), want: OutcomeSourceUnavailable},
		{err: domain.NewParseError(nil, "x"), want: OutcomeParseError},
		{err: domain.NewDataError(nil, "x"), want: OutcomeDataError},
		{err: errors.New("boom"), want: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}
