// Package view renderiza a página HTML do dashboard
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-insights-dashboard/internal/domain"
	"github.com/vfg2006/sales-insights-dashboard/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed templates/*.html
var templatesFS embed.FS

const generatedAtLayout = "02/01/2006 15:04:05"

// ChartFragment é um gráfico pronto para o Plotly.newPlot
type ChartFragment struct {
	ID     string
	Figure template.JS
}

type page struct {
	PlotlyURL   string
	Insights    []string
	Charts      []ChartFragment
	Source      string
	RecordCount int
	GeneratedAt string
}

type errorPage struct {
	Status  int
	Code    string
	Message string
}

type Renderer struct {
	templates *template.Template
	plotlyURL string
}

func NewRenderer(plotlyURL string) (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar templates: %w", err)
	}

	return &Renderer{templates: templates, plotlyURL: plotlyURL}, nil
}

// NewChartFragment serializa a figura e gera um id curto para o elemento
func NewChartFragment(figure *domain.Figure) (ChartFragment, error) {
	payload, err := json.Marshal(figure)
	if err != nil {
		return ChartFragment{}, fmt.Errorf("erro ao serializar gráfico: %w", err)
	}

	return ChartFragment{
		ID:     "chart-" + utils.GenerateID(),
		Figure: template.JS(payload),
	}, nil
}

// Dashboard escreve a página completa: insights e os três gráficos
func (r *Renderer) Dashboard(w io.Writer, dashboard *domain.Dashboard) error {
	charts := make([]ChartFragment, 0, 3)
	for _, figure := range []*domain.Figure{dashboard.TrendChart, dashboard.ChannelChart, dashboard.CorrelationChart} {
		if figure == nil {
			continue
		}
		fragment, err := NewChartFragment(figure)
		if err != nil {
			return err
		}
		charts = append(charts, fragment)
	}

	return r.templates.ExecuteTemplate(w, "index.html", page{
		PlotlyURL:   r.plotlyURL,
		Insights:    dashboard.Insights,
		Charts:      charts,
		Source:      dashboard.Source,
		RecordCount: dashboard.RecordCount,
		GeneratedAt: dashboard.GeneratedAt.In(time.Local).Format(generatedAtLayout),
	})
}

func (r *Renderer) Error(w io.Writer, status int, code, message string) error {
	return r.templates.ExecuteTemplate(w, "error.html", errorPage{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
