package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record representa uma linha de venda carregada da fonte de dados
type Record struct {
	Date     time.Time           `json:"date"`
	Period   Period              `json:"period"`
	Month    string              `json:"month"` // Formato Jan/2006
	Channel  string              `json:"channel"`
	Revenue  decimal.NullDecimal `json:"revenue"`
	AdsSpend decimal.NullDecimal `json:"ads_spend"` // Inválido quando ausente ou não numérico
}

// Table é o conteúdo bruto lido de uma fonte tabular, antes da conversão em Records
type Table struct {
	Origin    string
	Header    []string
	Rows      [][]string
	FirstLine int // Linha (1-based) da primeira linha de dados na origem
}
