package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
)

const plotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

func figure(title string) *domain.Figure {
	return &domain.Figure{
		Data:   []domain.Trace{{Type: "bar", X: []string{"A"}, Y: []float64{1}}},
		Layout: domain.Layout{Title: domain.Title{Text: title}},
	}
}

func TestNewChartFragment(t *testing.T) {
	first, err := NewChartFragment(figure("</script><script>alert(1)</script>"))
	require.NoError(t, err)
	second, err := NewChartFragment(figure("b"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.ID, "chart-"))
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotContains(t, string(first.Figure), "</script>")
	assert.Contains(t, string(first.Figure), `"type":"bar"`)
}

func TestRenderer_Dashboard(t *testing.T) {
	renderer, err := NewRenderer(plotlyURL)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Dashboard(&buf, &domain.Dashboard{
		TrendChart:       figure("Tendência Mensal de Receita"),
		ChannelChart:     figure("Receita Média por Canal"),
		CorrelationChart: figure("Correlação entre Gastos e Receita (r=0.93)"),
		Insights:         []string{"Canal líder: <b>Google</b> (R$ 1,234.56); atenção ao canal Email."},
		Source:           "data.csv",
		RecordCount:      42,
		GeneratedAt:      time.Date(2024, time.May, 1, 10, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, plotlyURL)
	assert.Equal(t, 3, strings.Count(html, `class="chart"`))
	assert.Equal(t, 3, strings.Count(html, "Plotly.newPlot("))
	assert.Contains(t, html, "&lt;b&gt;Google&lt;/b&gt;")
	assert.Contains(t, html, "42 registros")
	assert.Contains(t, html, "01/05/2024 10:00:00")
}

func TestRenderer_DashboardWithoutInsights(t *testing.T) {
	renderer, err := NewRenderer(plotlyURL)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Dashboard(&buf, &domain.Dashboard{TrendChart: figure("x")}))

	assert.Contains(t, buf.String(), "Nenhum insight relevante")
	assert.Equal(t, 1, strings.Count(buf.String(), `class="chart"`))
}

func TestRenderer_Error(t *testing.T) {
	renderer, err := NewRenderer(plotlyURL)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Error(&buf, 503, "DATA_001", "Fonte de dados indisponível"))

	assert.Contains(t, buf.String(), "Fonte de dados indisponível")
	assert.Contains(t, buf.String(), "DATA_001")
	assert.Contains(t, buf.String(), "HTTP 503")
}
