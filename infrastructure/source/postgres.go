package source

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
)

// PostgresReader lê as vendas da tabela sales_records
type PostgresReader struct {
	repo  repository.SalesRecordRepository
	table string
}

func NewPostgresReader(repo repository.SalesRecordRepository, table string) *PostgresReader {
	if table == "" {
		table = repository.DefaultSalesRecordTable
	}
	return &PostgresReader{repo: repo, table: table}
}

func (r *PostgresReader) Name() string {
	return "postgres:" + r.table
}

func (r *PostgresReader) ReadTable(ctx context.Context) (*domain.Table, error) {
	rows, err := r.repo.ListRows(ctx)
	if err != nil {
		return nil, domain.NewSourceUnavailableError(errors.Wrap(err, "listar vendas"), r.Name())
	}

	return &domain.Table{
		Origin:    r.Name(),
		Header:    repository.SalesRecordColumns,
		Rows:      rows,
		FirstLine: 1,
	}, nil
}

func (r *PostgresReader) Fingerprint(ctx context.Context) (string, error) {
	return r.repo.Fingerprint(ctx)
}
