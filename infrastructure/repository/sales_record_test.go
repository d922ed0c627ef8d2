package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
)

func TestNewSalesRecordRepository_TableName(t *testing.T) {
	tests := []struct {
		table   string
		wantErr bool
	}{
		{table: "", wantErr: false},
		{table: "sales_records", wantErr: false},
		{table: "analytics.sales_records", wantErr: false},
		{table: "sales; DROP TABLE users", wantErr: true},
		{table: "1sales", wantErr: true},
		{table: "a.b.c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			repo, err := NewSalesRecordRepository(nil, tt.table)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, repo)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestListRowsQuery(t *testing.T) {
	query, args, err := listRowsQuery("sales_records").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT date, channel, revenue::text, ads_spend::text FROM sales_records ORDER BY date ASC, channel ASC", query)
	assert.Empty(t, args)
}

func TestFingerprintQuery(t *testing.T) {
	query, _, err := fingerprintQuery("sales_records").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*), "+
		"COALESCE(md5(string_agg("+
		"concat_ws('|', date::text, channel, COALESCE(revenue::text, ''), COALESCE(ads_spend::text, '')), ',' ORDER BY "+
		"concat_ws('|', date::text, channel, COALESCE(revenue::text, ''), COALESCE(ads_spend::text, '')))), '') "+
		"FROM sales_records", query)

	// Uma alteração de receita ou gasto precisa mudar o resultado, então as
	// duas colunas entram no digest e updated_at não é usado
	assert.Contains(t, query, "revenue::text")
	assert.Contains(t, query, "ads_spend::text")
	assert.NotContains(t, query, "updated_at")
}

func TestInsertQuery(t *testing.T) {
	records := []domain.Record{
		{
			Date:     time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Channel:  "Google",
			Revenue:  decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true},
			AdsSpend: decimal.NullDecimal{},
		},
		{
			Date:     time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			Channel:  "Email",
			Revenue:  decimal.NullDecimal{Decimal: decimal.NewFromInt(50), Valid: true},
			AdsSpend: decimal.NullDecimal{Decimal: decimal.NewFromInt(5), Valid: true},
		},
	}

	query, args, err := insertQuery("sales_records", records).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO sales_records (id,date,channel,revenue,ads_spend) VALUES ($1,$2,$3,$4,$5),($6,$7,$8,$9,$10)", query)
	require.Len(t, args, 10)
	assert.Len(t, args[0], 8)
	assert.Equal(t, "2024-01-15", args[1])
	assert.Equal(t, "Google", args[2])
	assert.Equal(t, records[0].AdsSpend, args[4])
	assert.NotEqual(t, args[0], args[5])
}

func TestCreateTableStatement(t *testing.T) {
	statement := createTableStatement("analytics.sales_records")
	assert.Contains(t, statement, "CREATE TABLE IF NOT EXISTS analytics.sales_records")
	assert.Contains(t, statement, "updated_at TIMESTAMPTZ")
}
