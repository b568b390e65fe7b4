package service

import (
	"kreditku_backend/internals/features/programs/model"
	"kreditku_backend/internals/features/simulations/calculator"
)

// ToTenorOptions mengubah tenor program menjadi input kalkulator.
// Filter aktif & urutan tenor dikerjakan kalkulator sendiri.
func ToTenorOptions(p *model.ProgramModel) []calculator.TenorOption {
	out := make([]calculator.TenorOption, 0, len(p.ProgramTenors))
	for _, t := range p.ProgramTenors {
		out = append(out, calculator.TenorOption{
			Tenor:      t.ProgramTenorMonths,
			AnnualRate: t.ProgramTenorAnnualRate.InexactFloat64(),
			IsActive:   t.ProgramTenorIsActive,
		})
	}
	return out
}

// DownPaymentPercent sebagai float64 untuk kalkulator
func DownPaymentPercent(p *model.ProgramModel) float64 {
	return p.ProgramDownPaymentPercent.InexactFloat64()
}

// RateForTenor mencari bunga tenor aktif; false jika tenor tidak ditawarkan program.
func RateForTenor(p *model.ProgramModel, months int) (float64, bool) {
	for _, o := range calculator.ActiveOptions(ToTenorOptions(p)) {
		if o.Tenor == months {
			return o.AnnualRate, true
		}
	}
	return 0, false
}
