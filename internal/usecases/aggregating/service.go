// Package aggregating calcula as visões agregadas do dashboard a partir dos Records
package aggregating

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/pkg/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// Mínimo de pares (gasto, receita) para correlação e regressão
	minCorrelationPairs = 2

	// OutlierStdFactor multiplica o desvio padrão populacional dos resíduos
	OutlierStdFactor = 1.5

	// Tolerâncias relativas para variância nula e ajuste exato
	constantTolerance = 1e-12
	exactFitTolerance = 1e-9
)

// Aggregate calcula tendência, médias por canal e correlação
func Aggregate(records []domain.Record) (*domain.Aggregates, error) {
	correlation, err := Correlate(records)
	if err != nil {
		return nil, err
	}

	return &domain.Aggregates{
		Trend:       Trend(records),
		Channels:    ChannelBars(records),
		Correlation: correlation,
	}, nil
}

// Trend soma a receita por mês. A ordem é cronológica pelo período,
// não pelo rótulo de exibição.
func Trend(records []domain.Record) domain.Trend {
	sums := make(map[domain.Period]decimal.Decimal)
	for _, record := range records {
		sum := sums[record.Period]
		if record.Revenue.Valid {
			sum = sum.Add(record.Revenue.Decimal)
		}
		sums[record.Period] = sum
	}

	trend := make(domain.Trend, 0, len(sums))
	for period, revenue := range sums {
		trend = append(trend, domain.TrendPoint{
			Period:  period,
			Month:   period.Label(),
			Revenue: revenue,
		})
	}

	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Period.Before(trend[j].Period)
	})

	return trend
}

type channelTotal struct {
	sum   decimal.Decimal
	count int64
}

// ChannelBars calcula a receita média de cada canal, ordenado pelo nome.
// Canais sem nenhuma receita válida são omitidos.
func ChannelBars(records []domain.Record) domain.ChannelBars {
	totals := make(map[string]*channelTotal)
	for _, record := range records {
		if !record.Revenue.Valid {
			continue
		}

		total, ok := totals[record.Channel]
		if !ok {
			total = &channelTotal{}
			totals[record.Channel] = total
		}
		total.sum = total.sum.Add(record.Revenue.Decimal)
		total.count++
	}

	bars := make(domain.ChannelBars, 0, len(totals))
	for channel, total := range totals {
		bars = append(bars, domain.ChannelBar{
			Channel:     channel,
			MeanRevenue: total.sum.Div(decimal.NewFromInt(total.count)),
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Channel < bars[j].Channel
	})

	return bars
}

// Correlate calcula o r de Pearson entre gasto em anúncios e receita, ajusta
// uma reta por mínimos quadrados e marca como outlier cada amostra cujo
// resíduo absoluto excede OutlierStdFactor desvios padrão.
func Correlate(records []domain.Record) (*domain.Correlation, error) {
	samples := cleanSamples(records)
	if len(samples) < minCorrelationPairs {
		return nil, domain.NewDataError(nil, fmt.Sprintf(
			"correlação exige ao menos %d pares válidos de gasto e receita, encontrados %d",
			minCorrelationPairs, len(samples),
		))
	}

	spend := make([]float64, len(samples))
	revenue := make([]float64, len(samples))
	for i, sample := range samples {
		spend[i] = sample.AdsSpend
		revenue[i] = sample.Revenue
	}

	result := &domain.Correlation{Samples: samples, Outliers: []int{}}

	if isConstant(spend) || isConstant(revenue) {
		result.Degenerate = true
		result.Intercept = stat.Mean(revenue, nil)
	} else {
		result.R = clamp(stat.Correlation(spend, revenue, nil), -1, 1)
		result.Intercept, result.Slope = stat.LinearRegression(spend, revenue, nil, false)
	}

	residuals := make([]float64, len(samples))
	for i := range samples {
		samples[i].Fitted = result.Intercept + result.Slope*samples[i].AdsSpend
		samples[i].Residual = samples[i].Revenue - samples[i].Fitted
		residuals[i] = samples[i].Residual
	}

	std := stat.PopStdDev(residuals, nil)
	if std <= exactFitTolerance*scale(revenue) {
		return result, nil
	}

	threshold := OutlierStdFactor * std
	for i := range samples {
		if math.Abs(samples[i].Residual) > threshold {
			samples[i].Outlier = true
			result.Outliers = append(result.Outliers, i)
		}
	}

	return result, nil
}

// cleanSamples mantém apenas linhas com gasto e receita presentes e finitos
func cleanSamples(records []domain.Record) []domain.CorrelationSample {
	samples := make([]domain.CorrelationSample, 0, len(records))
	for _, record := range records {
		if !record.AdsSpend.Valid || !record.Revenue.Valid {
			continue
		}

		spend := record.AdsSpend.Decimal.InexactFloat64()
		revenue := record.Revenue.Decimal.InexactFloat64()
		if !utils.IsFinite(spend) || !utils.IsFinite(revenue) {
			continue
		}

		samples = append(samples, domain.CorrelationSample{
			Channel:  record.Channel,
			Month:    record.Month,
			AdsSpend: spend,
			Revenue:  revenue,
		})
	}
	return samples
}

func isConstant(values []float64) bool {
	return floats.Max(values)-floats.Min(values) <= constantTolerance*scale(values)
}

func scale(values []float64) float64 {
	s := 1.0
	for _, v := range values {
		s = math.Max(s, math.Abs(v))
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
