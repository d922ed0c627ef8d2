package domain

import "time"

// Dashboard é o payload completo entregue à camada de apresentação
type Dashboard struct {
	TrendChart       *Figure     `json:"trend_chart"`
	ChannelChart     *Figure     `json:"channel_chart"`
	CorrelationChart *Figure     `json:"correlation_chart"`
	Insights         []string    `json:"insights"`
	Aggregates       *Aggregates `json:"aggregates"`
	Source           string      `json:"source"`
	Fingerprint      string      `json:"fingerprint,omitempty"`
	RecordCount      int         `json:"record_count"`
	GeneratedAt      time.Time   `json:"generated_at"`
}
