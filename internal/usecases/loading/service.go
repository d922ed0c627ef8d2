// Package loading converte fontes tabulares em Records de venda
package loading

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/pkg/log"
	"github.com/vfg2006/sales-insights-dashboard/pkg/utils"
)

// Colunas obrigatórias da fonte
const (
	ColumnDate     = "date"
	ColumnChannel  = "channel"
	ColumnRevenue  = "revenue"
	ColumnAdsSpend = "ads_spend"
)

// UnknownChannel é usado quando a linha não informa o canal
const UnknownChannel = "Não informado"

var requiredColumns = []string{ColumnDate, ColumnChannel, ColumnRevenue, ColumnAdsSpend}

type Service struct {
	reader TableReader
}

func NewService(reader TableReader) *Service {
	return &Service{reader: reader}
}

// Load lê a fonte e converte cada linha em um Record
func (s *Service) Load(ctx context.Context) ([]domain.Record, error) {
	table, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, err
	}

	return ParseTable(ctx, table)
}

// ParseTable converte uma tabela bruta em Records.
// Datas inválidas interrompem a carga; gastos inválidos viram ausentes.
func ParseTable(ctx context.Context, table *domain.Table) ([]domain.Record, error) {
	if table == nil {
		return nil, domain.NewDataError(nil, "fonte sem conteúdo")
	}

	columns, err := locateColumns(table.Header)
	if err != nil {
		return nil, err
	}

	firstLine := table.FirstLine
	if firstLine <= 0 {
		firstLine = 2
	}

	records := make([]domain.Record, 0, len(table.Rows))
	coercedSpend := 0

	for i, row := range table.Rows {
		line := firstLine + i

		if isBlankRow(row) {
			continue
		}

		rawDate := cell(row, columns[ColumnDate])
		date, err := utils.ParseDate(rawDate)
		if err != nil {
			return nil, domain.NewParseError(err, fmt.Sprintf("%s linha %d: data inválida %q", table.Origin, line, rawDate))
		}

		rawRevenue := cell(row, columns[ColumnRevenue])
		revenue, err := parseAmount(rawRevenue)
		if err != nil {
			return nil, domain.NewParseError(err, fmt.Sprintf("%s linha %d: receita inválida %q", table.Origin, line, rawRevenue))
		}

		adsSpend, err := parseAmount(cell(row, columns[ColumnAdsSpend]))
		if err != nil {
			coercedSpend++
		}

		channel := cell(row, columns[ColumnChannel])
		if channel == "" {
			channel = UnknownChannel
		}

		period := domain.PeriodOf(date)
		records = append(records, domain.Record{
			Date:     date,
			Period:   period,
			Month:    period.Label(),
			Channel:  channel,
			Revenue:  revenue,
			AdsSpend: adsSpend,
		})
	}

	if len(records) == 0 {
		return nil, domain.NewDataError(nil, fmt.Sprintf("%s não possui registros", table.Origin))
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"source":  table.Origin,
		"records": len(records),
	})
	if coercedSpend > 0 {
		logger.WithField("coerced_ads_spend", coercedSpend).Warn("loading: valores de ads_spend não numéricos tratados como ausentes")
	}
	logger.Debug("loading: registros carregados")

	return records, nil
}

// locateColumns encontra o índice de cada coluna obrigatória pelo nome do cabeçalho
func locateColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	columns := make(map[string]int, len(requiredColumns))
	missing := make([]string, 0)
	for _, column := range requiredColumns {
		idx, ok := index[column]
		if !ok {
			missing = append(missing, column)
			continue
		}
		columns[column] = idx
	}

	if len(missing) > 0 {
		return nil, domain.NewDataError(nil, fmt.Sprintf("colunas obrigatórias ausentes: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// parseAmount interpreta um valor monetário. Vazio, NaN, infinito e valores
// fora da faixa de float64 (ex: 1e400) viram ausentes; texto não numérico retorna erro.
func parseAmount(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if errors.Is(err, strconv.ErrRange) {
		return decimal.NullDecimal{}, nil
	}
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		amount = decimal.NewFromFloat(f)
	}

	return decimal.NullDecimal{Decimal: amount, Valid: true}, nil
}
