package loading

import (
	"context"

	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// TableReader lê o conteúdo bruto de uma fonte tabular (CSV, XLSX, Postgres)
type TableReader interface {
	ReadTable(ctx context.Context) (*domain.Table, error)
}
