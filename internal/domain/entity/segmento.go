package entity

import "time"

// Segmento agrupa contratos por faixa de dias de atraso dentro de um tenant.
type Segmento struct {
	ID             int64
	TenantID       int64
	Name           string
	MinDaysOverdue int
	MaxDaysOverdue int
	CreatedAt      time.Time
}

// Contains informa se days cai no intervalo fechado do segmento.
func (s *Segmento) Contains(days int) bool {
	return days >= s.MinDaysOverdue && days <= s.MaxDaysOverdue
}

// Overlaps informa se os dois intervalos se sobrepõem.
func (s *Segmento) Overlaps(min, max int) bool {
	return min <= s.MaxDaysOverdue && max >= s.MinDaysOverdue
}

// DefaultSegmentFor devolve o segmento padrão usado quando o tenant não configurou nenhum.
func DefaultSegmentFor(days int) string {
	switch {
	case days <= 30:
		return "Até 30 dias"
	case days <= 60:
		return "31 a 60 dias"
	case days <= 90:
		return "61 a 90 dias"
	default:
		return "Acima de 90 dias"
	}
}
