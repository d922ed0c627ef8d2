package domain

import (
	"fmt"
	"time"
)

// MonthLabelLayout é o formato de exibição do mês (ex: Jan/2024)
const MonthLabelLayout = "Jan/2006"

// Period identifica um mês do calendário. Diferente do rótulo de exibição,
// é ordenável cronologicamente.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf retorna o período (ano, mês) de uma data
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Before indica se p é anterior a other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// Label retorna o rótulo de exibição no formato Jan/2006
func (p Period) Label() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format(MonthLabelLayout)
}

// String retorna o período no formato yyyy-mm
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
