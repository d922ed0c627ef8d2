package dashboarding

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
)

// Builder monta o dashboard completo a partir da fonte configurada
type Builder interface {
	Build(ctx context.Context) (*domain.Dashboard, error)
}

// RecordLoader carrega os Records da fonte
type RecordLoader interface {
	Load(ctx context.Context) ([]domain.Record, error)
}

// Fingerprinter identifica o conteúdo atual da fonte
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// MetricsRecorder registra duração e resultado de cada montagem
type MetricsRecorder interface {
	ObserveBuild(outcome string, duration time.Duration)
}
