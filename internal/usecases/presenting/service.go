// Package presenting converte as visões agregadas em figuras do Plotly.js
package presenting

import (
	"fmt"
	"sort"

	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/pkg/utils"
)

// Títulos dos gráficos
const (
	TrendTitle       = "Tendência Mensal de Receita"
	ChannelTitle     = "Receita Média por Canal"
	CorrelationTitle = "Correlação entre Gastos e Receita"
)

const (
	fitTraceName     = "Tendência"
	outlierTraceName = "Outliers"
	outlierColor     = "#d62728"
)

// Paleta padrão do Plotly, atribuída aos canais em ordem alfabética
var palette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

func colorFor(i int) string {
	return palette[i%len(palette)]
}

// Charts monta as três figuras do dashboard
func Charts(aggregates *domain.Aggregates) (trend, channels, correlation *domain.Figure) {
	return TrendChart(aggregates.Trend), ChannelChart(aggregates.Channels), CorrelationChart(aggregates.Correlation)
}

// TrendChart gera o gráfico de linha da receita mensal
func TrendChart(trend domain.Trend) *domain.Figure {
	return &domain.Figure{
		Data: []domain.Trace{
			{
				Type:          "scatter",
				Mode:          "lines+markers",
				Name:          "Receita",
				X:             trend.Labels(),
				Y:             trend.Values(),
				HoverTemplate: "%{x}<br>Receita: %{y:,.2f}<extra></extra>",
				Marker:        &domain.Marker{Color: colorFor(0)},
			},
		},
		Layout: domain.Layout{
			Title: domain.Title{Text: TrendTitle},
			XAxis: domain.Axis{Title: domain.Title{Text: "Mês"}, Type: "category"},
			YAxis: domain.Axis{Title: domain.Title{Text: "Receita"}},
		},
	}
}

// ChannelChart gera o gráfico de barras com uma série por canal
func ChannelChart(bars domain.ChannelBars) *domain.Figure {
	traces := make([]domain.Trace, 0, len(bars))
	for i, bar := range bars {
		value := utils.RoundWithTwoDecimalPlace(bar.MeanRevenue.InexactFloat64())
		traces = append(traces, domain.Trace{
			Type:   "bar",
			Name:   bar.Channel,
			X:      []string{bar.Channel},
			Y:      []float64{value},
			Text:   []string{fmt.Sprintf("%.2f", value)},
			Marker: &domain.Marker{Color: colorFor(i)},
		})
	}

	return &domain.Figure{
		Data: traces,
		Layout: domain.Layout{
			Title:       domain.Title{Text: ChannelTitle},
			XAxis:       domain.Axis{Title: domain.Title{Text: "Canal"}, Type: "category"},
			YAxis:       domain.Axis{Title: domain.Title{Text: "Receita média"}},
			LegendTitle: &domain.Title{Text: "Canal"},
			BarMode:     "relative",
		},
	}
}

// CorrelationChart gera o gráfico de dispersão com uma série por canal,
// a reta ajustada tracejada e os outliers destacados
func CorrelationChart(corr *domain.Correlation) *domain.Figure {
	figure := &domain.Figure{
		Data: []domain.Trace{},
		Layout: domain.Layout{
			Title:       domain.Title{Text: CorrelationTitleFor(corr)},
			XAxis:       domain.Axis{Title: domain.Title{Text: "Gastos em anúncios"}},
			YAxis:       domain.Axis{Title: domain.Title{Text: "Receita"}},
			LegendTitle: &domain.Title{Text: "Canal"},
		},
	}
	if corr == nil || len(corr.Samples) == 0 {
		return figure
	}

	byChannel := make(map[string][]domain.CorrelationSample)
	for _, sample := range corr.Samples {
		byChannel[sample.Channel] = append(byChannel[sample.Channel], sample)
	}

	channels := make([]string, 0, len(byChannel))
	for channel := range byChannel {
		channels = append(channels, channel)
	}
	sort.Strings(channels)

	for i, channel := range channels {
		samples := byChannel[channel]
		x := make([]float64, len(samples))
		y := make([]float64, len(samples))
		text := make([]string, len(samples))
		for j, sample := range samples {
			x[j] = sample.AdsSpend
			y[j] = sample.Revenue
			text[j] = sample.Month
		}

		figure.Data = append(figure.Data, domain.Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          channel,
			X:             x,
			Y:             y,
			Text:          text,
			HoverTemplate: "%{text}<br>Gasto: %{x:,.2f}<br>Receita: %{y:,.2f}",
			Marker:        &domain.Marker{Color: colorFor(i), Size: 9},
		})
	}

	figure.Data = append(figure.Data, fitTrace(corr))
	if outliers := outlierTrace(corr); outliers != nil {
		figure.Data = append(figure.Data, *outliers)
	}

	return figure
}

// CorrelationTitleFor inclui o r com duas casas no título
func CorrelationTitleFor(corr *domain.Correlation) string {
	if corr == nil || corr.Degenerate {
		return fmt.Sprintf("%s (r=n/d)", CorrelationTitle)
	}
	return fmt.Sprintf("%s (r=%.2f)", CorrelationTitle, corr.R)
}

// fitTrace desenha a reta ajustada entre o menor e o maior gasto
func fitTrace(corr *domain.Correlation) domain.Trace {
	lo, hi := corr.Samples[0].AdsSpend, corr.Samples[0].AdsSpend
	for _, sample := range corr.Samples[1:] {
		if sample.AdsSpend < lo {
			lo = sample.AdsSpend
		}
		if sample.AdsSpend > hi {
			hi = sample.AdsSpend
		}
	}

	return domain.Trace{
		Type: "scatter",
		Mode: "lines",
		Name: fitTraceName,
		X:    []float64{lo, hi},
		Y:    []float64{corr.Intercept + corr.Slope*lo, corr.Intercept + corr.Slope*hi},
		Line: &domain.Line{Color: "#444444", Dash: "dash", Width: 2},
	}
}

func outlierTrace(corr *domain.Correlation) *domain.Trace {
	if len(corr.Outliers) == 0 {
		return nil
	}

	x := make([]float64, 0, len(corr.Outliers))
	y := make([]float64, 0, len(corr.Outliers))
	text := make([]string, 0, len(corr.Outliers))
	for _, idx := range corr.Outliers {
		if idx < 0 || idx >= len(corr.Samples) {
			continue
		}
		sample := corr.Samples[idx]
		x = append(x, sample.AdsSpend)
		y = append(y, sample.Revenue)
		text = append(text, sample.Label())
	}

	return &domain.Trace{
		Type:          "scatter",
		Mode:          "markers",
		Name:          outlierTraceName,
		X:             x,
		Y:             y,
		Text:          text,
		HoverTemplate: "Outlier: %{text}<extra></extra>",
		Marker: &domain.Marker{
			Color:  "rgba(0,0,0,0)",
			Size:   16,
			Symbol: "circle-open",
			Line:   &domain.MarkerLine{Color: outlierColor, Width: 2},
		},
	}
}
