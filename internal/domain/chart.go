package domain

// Figure descreve um gráfico no formato data/layout do Plotly.js
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type          string   `json:"type"`
	Mode          string   `json:"mode,omitempty"`
	Name          string   `json:"name,omitempty"`
	X             any      `json:"x"`
	Y             any      `json:"y"`
	Text          []string `json:"text,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Line          *Line    `json:"line,omitempty"`
	ShowLegend    *bool    `json:"showlegend,omitempty"`
}

type Marker struct {
	Color  string      `json:"color,omitempty"`
	Size   int         `json:"size,omitempty"`
	Symbol string      `json:"symbol,omitempty"`
	Line   *MarkerLine `json:"line,omitempty"`
}

type MarkerLine struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

type Line struct {
	Color string `json:"color,omitempty"`
	Dash  string `json:"dash,omitempty"`
	Width int    `json:"width,omitempty"`
}

type Layout struct {
	Title       Title  `json:"title"`
	XAxis       Axis   `json:"xaxis"`
	YAxis       Axis   `json:"yaxis"`
	LegendTitle *Title `json:"legend_title,omitempty"`
	BarMode     string `json:"barmode,omitempty"`
}

type Axis struct {
	Title Title  `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}
