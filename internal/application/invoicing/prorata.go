// Package invoicing calcula los cargos de un periodo de facturación de un
// financiador (paquete core + módulos con prorrateo) y su vista previa en PDF.
package invoicing

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

const ratioScale = 6 // decimales intermedios antes de redondear a 2

var one = decimal.NewFromInt(1)

// ProrataService calcula prorrateos de contrato y de beneficiarios sobre un
// periodo de facturación. Los ratios se calculan con 6 decimales, se redondean
// a 2 y se acotan a [0, 1].
type ProrataService struct {
	financerRepo repository.FinancerRepository
}

// NewProrataService construye el servicio de prorrateo.
func NewProrataService(financerRepo repository.FinancerRepository) *ProrataService {
	return &ProrataService{financerRepo: financerRepo}
}

// ContractProrata devuelve la fracción facturable del periodo según la fecha de
// contrato: 1 si el contrato es anterior al periodo, 0 si es posterior, y la
// proporción de días activos (inclusive) en el caso parcial.
func (s *ProrataService) ContractProrata(contractDate, periodStart, periodEnd time.Time) decimal.Decimal {
	contractDate = dateOnly(contractDate)
	periodStart = dateOnly(periodStart)
	periodEnd = dateOnly(periodEnd)

	if !contractDate.After(periodStart) {
		return one
	}
	if contractDate.After(periodEnd) {
		return decimal.Zero
	}

	totalDays := periodLengthInDays(periodStart, periodEnd)
	activeDays := diffInDaysInclusive(contractDate, periodEnd)
	return ratio(activeDays, totalDays)
}

// BeneficiaryProrata devuelve, por usuario, la fracción del periodo en la que
// su afiliación estuvo vigente. Beneficiarios sin solape con el periodo no
// aparecen en el resultado.
func (s *ProrataService) BeneficiaryProrata(
	ctx context.Context,
	financerID string,
	periodStart, periodEnd time.Time,
) (map[string]decimal.Decimal, error) {
	periodStart = dateOnly(periodStart)
	periodEnd = dateOnly(periodEnd)

	totalDays := periodLengthInDays(periodStart, periodEnd)
	if totalDays == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	beneficiaries, err := s.financerRepo.ListBeneficiaries(ctx, financerID)
	if err != nil {
		return nil, err
	}

	results := make(map[string]decimal.Decimal)
	for _, b := range beneficiaries {
		if !b.Active {
			continue
		}
		from := dateOnly(b.From)
		if from.After(periodEnd) {
			continue
		}
		start := maxDate(from, periodStart)
		end := periodEnd
		if b.To != nil {
			to := dateOnly(*b.To)
			if to.Before(periodStart) {
				continue
			}
			end = minDate(to, periodEnd)
		}
		if start.After(end) {
			continue
		}
		results[b.UserID] = ratio(diffInDaysInclusive(start, end), totalDays)
	}
	return results, nil
}

// SortedUserIDs devuelve las claves de un mapa de prorrateos en orden estable.
func SortedUserIDs(prorata map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(prorata))
	for id := range prorata {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func periodLengthInDays(start, end time.Time) int {
	if start.After(end) {
		return 0
	}
	return diffInDaysInclusive(start, end)
}

// diffInDaysInclusive cuenta ambos extremos: un periodo de un día vale 1.
func diffInDaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func ratio(numerator, denominator int) decimal.Decimal {
	if denominator <= 0 {
		return decimal.Zero
	}
	value := decimal.NewFromInt(int64(numerator)).
		DivRound(decimal.NewFromInt(int64(denominator)), ratioScale).
		Round(2)
	if value.GreaterThan(one) {
		return one
	}
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
