// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=sales_record.go -destination=mocks/mock_sales_record.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/pkg/utils"
)

const (
	DefaultSalesRecordTable = "sales_records"

	// Linhas por INSERT na importação
	insertBatchSize = 500
)

// SalesRecordColumns é o cabeçalho da tabela devolvida por ListRows
var SalesRecordColumns = []string{"date", "channel", "revenue", "ads_spend"}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type SalesRecordRepository interface {
	// ListRows retorna as vendas como texto, no mesmo formato de uma planilha
	ListRows(ctx context.Context) ([][]string, error)
	// Fingerprint muda sempre que uma venda é incluída, alterada ou removida
	Fingerprint(ctx context.Context) (string, error)
	InsertRecords(ctx context.Context, records []domain.Record) (int, error)
	EnsureSchema(ctx context.Context) error
}

type salesRecordRepository struct {
	conn  postgres.Conn
	table string
}

func NewSalesRecordRepository(conn postgres.Conn, table string) (SalesRecordRepository, error) {
	if table == "" {
		table = DefaultSalesRecordTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("nome de tabela inválido: %q", table)
	}

	return &salesRecordRepository{
		conn:  conn,
		table: table,
	}, nil
}

func (r *salesRecordRepository) ListRows(ctx context.Context) ([][]string, error) {
	query, args, err := listRowsQuery(r.table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([][]string, 0)
	for rows.Next() {
		var (
			date     time.Time
			channel  sql.NullString
			revenue  sql.NullString
			adsSpend sql.NullString
		)

		if err := rows.Scan(&date, &channel, &revenue, &adsSpend); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}

		result = append(result, []string{
			date.Format(time.DateOnly),
			channel.String,
			revenue.String,
			adsSpend.String,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *salesRecordRepository) Fingerprint(ctx context.Context) (string, error) {
	query, args, err := fingerprintQuery(r.table).ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		count  int64
		digest string
	)
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count, &digest); err != nil {
		return "", fmt.Errorf("erro ao calcular impressão digital de %s: %w", r.table, err)
	}

	return fmt.Sprintf("%d|%s", count, digest), nil
}

func (r *salesRecordRepository) InsertRecords(ctx context.Context, records []domain.Record) (int, error) {
	inserted := 0

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))

			query, args, err := insertQuery(r.table, records[start:end]).ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir o insert: %w", err)
			}

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("erro ao inserir vendas [%d:%d]: %w", start, end, err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *salesRecordRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, createTableStatement(r.table)); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", r.table, err)
	}
	return nil
}

func listRowsQuery(table string) squirrel.SelectBuilder {
	return squirrel.
		Select("date", "channel", "revenue::text", "ads_spend::text").
		From(table).
		OrderBy("date ASC", "channel ASC").
		PlaceholderFormat(squirrel.Dollar)
}

// fingerprintDigest é o md5 do conteúdo das colunas lidas pelo dashboard.
// Não depende de updated_at, que um UPDATE manual não altera.
const fingerprintDigest = "COALESCE(md5(string_agg(" + fingerprintRow + ", ',' ORDER BY " + fingerprintRow + ")), '')"

const fingerprintRow = "concat_ws('|', date::text, channel, COALESCE(revenue::text, ''), COALESCE(ads_spend::text, ''))"

func fingerprintQuery(table string) squirrel.SelectBuilder {
	return squirrel.
		Select("COUNT(*)", fingerprintDigest).
		From(table).
		PlaceholderFormat(squirrel.Dollar)
}

func insertQuery(table string, records []domain.Record) squirrel.InsertBuilder {
	builder := squirrel.
		Insert(table).
		Columns("id", "date", "channel", "revenue", "ads_spend").
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		builder = builder.Values(
			utils.GenerateID(),
			record.Date.Format(time.DateOnly),
			record.Channel,
			record.Revenue,
			record.AdsSpend,
		)
	}
	return builder
}

func createTableStatement(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id         TEXT PRIMARY KEY,
	date       DATE NOT NULL,
	channel    TEXT NOT NULL,
	revenue    NUMERIC(14, 2),
	ads_spend  NUMERIC(14, 2),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, table)
}
