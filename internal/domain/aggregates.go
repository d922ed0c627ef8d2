package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TrendPoint é a receita somada de um mês
type TrendPoint struct {
	Period  Period          `json:"period"`
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Trend é a série mensal de receita, em ordem cronológica
type Trend []TrendPoint

func (t Trend) Labels() []string {
	labels := make([]string, len(t))
	for i, point := range t {
		labels[i] = point.Month
	}
	return labels
}

func (t Trend) Values() []float64 {
	values := make([]float64, len(t))
	for i, point := range t {
		values[i] = point.Revenue.InexactFloat64()
	}
	return values
}

// ChannelBar é a receita média de um canal
type ChannelBar struct {
	Channel     string          `json:"channel"`
	MeanRevenue decimal.Decimal `json:"mean_revenue"`
}

// ChannelBars é ordenado pelo nome do canal
type ChannelBars []ChannelBar

func (b ChannelBars) Labels() []string {
	labels := make([]string, len(b))
	for i, bar := range b {
		labels[i] = bar.Channel
	}
	return labels
}

func (b ChannelBars) Values() []float64 {
	values := make([]float64, len(b))
	for i, bar := range b {
		values[i] = bar.MeanRevenue.InexactFloat64()
	}
	return values
}

// CorrelationSample é um par (gasto, receita) válido usado na correlação
type CorrelationSample struct {
	Channel  string  `json:"channel"`
	Month    string  `json:"month"`
	AdsSpend float64 `json:"ads_spend"`
	Revenue  float64 `json:"revenue"`
	Fitted   float64 `json:"fitted"`
	Residual float64 `json:"residual"`
	Outlier  bool    `json:"outlier"`
}

// Label identifica a amostra nos textos de insight
func (s CorrelationSample) Label() string {
	return fmt.Sprintf("%s (%s)", s.Channel, s.Month)
}

// Correlation é o resultado da correlação entre gasto em anúncios e receita.
// Outliers contém índices de Samples.
type Correlation struct {
	R          float64             `json:"r"`
	Slope      float64             `json:"slope"`
	Intercept  float64             `json:"intercept"`
	Degenerate bool                `json:"degenerate"` // Gasto ou receita sem variância: r indefinido, reportado como 0
	Samples    []CorrelationSample `json:"samples"`
	Outliers   []int               `json:"outliers"`
}

// OutlierLabels retorna os rótulos das amostras marcadas como outlier,
// indexados no mesmo conjunto que gerou os índices
func (c *Correlation) OutlierLabels() []string {
	if c == nil {
		return nil
	}

	labels := make([]string, 0, len(c.Outliers))
	for _, idx := range c.Outliers {
		if idx < 0 || idx >= len(c.Samples) {
			continue
		}
		labels = append(labels, c.Samples[idx].Label())
	}
	return labels
}

// Aggregates agrupa as três visões derivadas dos Records
type Aggregates struct {
	Trend       Trend        `json:"trend"`
	Channels    ChannelBars  `json:"channels"`
	Correlation *Correlation `json:"correlation"`
}
