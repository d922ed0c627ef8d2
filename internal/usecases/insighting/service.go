// Package insighting gera os textos de insight a partir das visões agregadas
package insighting

import (
	"fmt"
	"math"
	"strings"

	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowPolicy define qual janela é usada como média anterior na tendência
type WindowPolicy string

const (
	// WindowExclusive usa todos os pontos exceto os 3 mais recentes
	WindowExclusive WindowPolicy = "exclusive"
	// WindowOverlapping usa a média de toda a série quando há exatamente 4 pontos
	WindowOverlapping WindowPolicy = "overlapping"
)

const (
	recentWindow        = 3
	minTrendPoints      = 4
	minDeltaPercent     = 5.0
	moderateCorrelation = 0.5
	strongCorrelation   = 0.7
)

// Options configura a geração dos insights
type Options struct {
	Window         WindowPolicy
	CurrencySymbol string
}

func DefaultOptions() Options {
	return Options{
		Window:         WindowExclusive,
		CurrencySymbol: "R$",
	}
}

// ParseWindowPolicy converte o valor de configuração para WindowPolicy
func ParseWindowPolicy(value string) (WindowPolicy, error) {
	switch WindowPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case WindowExclusive, "":
		return WindowExclusive, nil
	case WindowOverlapping:
		return WindowOverlapping, nil
	default:
		return "", fmt.Errorf("política de janela inválida: %q", value)
	}
}

var printer = message.NewPrinter(language.English)

// Generate produz a lista ordenada de insights: tendência, canais, correlação e outliers.
// Cada regra só acrescenta; nenhuma frase é revisada depois de emitida.
func Generate(trend domain.Trend, bars domain.ChannelBars, corr *domain.Correlation, opts Options) []string {
	insights := make([]string, 0, 4)

	if sentence, ok := trendInsight(trend.Values(), opts.Window); ok {
		insights = append(insights, sentence)
	}

	if sentence, ok := channelInsight(bars, opts.CurrencySymbol); ok {
		insights = append(insights, sentence)
	}

	if sentence, ok := correlationInsight(corr); ok {
		insights = append(insights, sentence)
	}

	if labels := corr.OutlierLabels(); len(labels) > 0 {
		insights = append(insights, fmt.Sprintf("Outliers detectados: %s.", strings.Join(labels, ", ")))
	}

	return insights
}

// TrendDelta calcula a variação percentual entre a média dos 3 últimos pontos
// e a média anterior. Retorna false quando a série tem menos de 4 pontos.
func TrendDelta(values []float64, window WindowPolicy) (float64, bool) {
	if len(values) < minTrendPoints {
		return 0, false
	}

	recent := stat.Mean(values[len(values)-recentWindow:], nil)

	prior := stat.Mean(values[:len(values)-recentWindow], nil)
	if window == WindowOverlapping && len(values) == minTrendPoints {
		prior = stat.Mean(values, nil)
	}

	if prior == 0 {
		return 0, true
	}
	return (recent - prior) / prior * 100, true
}

func trendInsight(values []float64, window WindowPolicy) (string, bool) {
	delta, ok := TrendDelta(values, window)
	if !ok || math.Abs(delta) < minDeltaPercent {
		return "", false
	}

	direction := "desacelerando"
	if delta > 0 {
		direction = "acelerando"
	}
	return fmt.Sprintf("Receita recente está %s %.1f%% vs média anterior.", direction, delta), true
}

func channelInsight(bars domain.ChannelBars, currency string) (string, bool) {
	if len(bars) == 0 {
		return "", false
	}

	values := bars.Values()
	leader := bars[floats.MaxIdx(values)]
	trailing := bars[floats.MinIdx(values)]

	return fmt.Sprintf("Canal líder: %s (%s); atenção ao canal %s.",
		leader.Channel, FormatCurrency(leader.MeanRevenue.InexactFloat64(), currency), trailing.Channel), true
}

func correlationInsight(corr *domain.Correlation) (string, bool) {
	if corr == nil || corr.Degenerate || math.Abs(corr.R) < moderateCorrelation {
		return "", false
	}

	strength := "moderada"
	if math.Abs(corr.R) >= strongCorrelation {
		strength = "forte"
	}

	direction := "negativa"
	if corr.R > 0 {
		direction = "positiva"
	}

	return fmt.Sprintf("Correlação %s %s entre gastos em anúncios e receita (r=%.2f).", strength, direction, corr.R), true
}

// FormatCurrency formata o valor com separador de milhar e duas casas (ex: R$ 1,234.56)
func FormatCurrency(value float64, symbol string) string {
	amount := printer.Sprintf("%.2f", value)
	if symbol == "" {
		return amount
	}
	return symbol + " " + amount
}
