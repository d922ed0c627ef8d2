package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/sales-insights-dashboard/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

const sampleCSV = `date,channel,revenue,ads_spend
2024-01-15,Google,1500.50,300
2024-02-03,Email,800,
2024-02-10,Instagram,950
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVReader_ReadTable(t *testing.T) {
	t.Run("Lê cabeçalho e linhas", func(t *testing.T) {
		reader := NewCSVReader(writeFile(t, "data.csv", sampleCSV))

		table, err := reader.ReadTable(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "data.csv", table.Origin)
		assert.Equal(t, []string{"date", "channel", "revenue", "ads_spend"}, table.Header)
		require.Len(t, table.Rows, 3)
		assert.Equal(t, []string{"2024-02-10", "Instagram", "950"}, table.Rows[2])
		assert.Equal(t, 2, table.FirstLine)
	})

	t.Run("Arquivo ausente", func(t *testing.T) {
		reader := NewCSVReader(filepath.Join(t.TempDir(), "nao-existe.csv"))

		_, err := reader.ReadTable(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Caminho é um diretório", func(t *testing.T) {
		reader := NewCSVReader(t.TempDir())

		_, err := reader.ReadTable(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
		assert.NotErrorIs(t, err, domain.ErrParse)
	})

	t.Run("Arquivo vazio", func(t *testing.T) {
		reader := NewCSVReader(writeFile(t, "data.csv", ""))

		_, err := reader.ReadTable(context.Background())
		assert.ErrorIs(t, err, domain.ErrData)
	})

	t.Run("Caminho padrão", func(t *testing.T) {
		assert.Equal(t, DefaultCSVPath, NewCSVReader("").Name())
	})
}

func TestParseCSV_Malformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("date,channel\n\"2024-01-01,A\n"), "data.csv")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestCSVReader_Fingerprint(t *testing.T) {
	path := writeFile(t, "data.csv", sampleCSV)
	reader := NewCSVReader(path)

	first, err := reader.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 64)

	same, err := reader.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, same)

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV+"2024-03-01,Google,10,1\n"), 0o600))
	changed, err := reader.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestXLSXReader_ReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendas.xlsx")

	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]any{"Date", "Channel", "Revenue", "Ads_Spend"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]any{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), "Google", 1500.5, 300}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A3", &[]any{"2024-02-03", "Email", 800, ""}))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	t.Run("Primeira aba", func(t *testing.T) {
		table, err := NewXLSXReader(path, "").ReadTable(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "vendas.xlsx", table.Origin)
		assert.Equal(t, []string{"Date", "Channel", "Revenue", "Ads_Spend"}, table.Header)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "2024-01-15", table.Rows[0][0])
		assert.Equal(t, "1500.5", table.Rows[0][2])
		assert.Equal(t, "2024-02-03", table.Rows[1][0])
	})

	t.Run("Aba inexistente", func(t *testing.T) {
		_, err := NewXLSXReader(path, "2030").ReadTable(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})

	t.Run("Arquivo ausente", func(t *testing.T) {
		_, err := NewXLSXReader(filepath.Join(t.TempDir(), "x.xlsx"), "").ReadTable(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})
}

func TestNormalizeExcelDate(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "45306", want: "2024-01-15"},
		{value: "2024-01-15", want: "2024-01-15"},
		{value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeExcelDate(tt.value))
		})
	}
}

func TestPostgresReader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSalesRecordRepository(ctrl)
	reader := NewPostgresReader(repo, "")

	t.Run("Converte linhas do banco em tabela", func(t *testing.T) {
		rows := [][]string{{"2024-01-15", "Google", "100.00", ""}}
		repo.EXPECT().ListRows(gomock.Any()).Return(rows, nil)

		table, err := reader.ReadTable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "postgres:sales_records", table.Origin)
		assert.Equal(t, repository.SalesRecordColumns, table.Header)
		assert.Equal(t, rows, table.Rows)
	})

	t.Run("Falha de conexão é fonte indisponível", func(t *testing.T) {
		repo.EXPECT().ListRows(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := reader.ReadTable(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})

	t.Run("Impressão digital do repositório", func(t *testing.T) {
		repo.EXPECT().Fingerprint(gomock.Any()).Return("10|123", nil)

		fingerprint, err := reader.Fingerprint(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "10|123", fingerprint)
	})
}
