// Package calculator menghitung angsuran bulanan (rumus anuitas) dan TDP
// untuk simulasi kredit dan pembuatan order.
package calculator

import (
	"math"
	"sort"
)

/* =========================
   Types
========================= */

// Mode menentukan input mana yang dipegang tetap saat simulasi.
type Mode string

const (
	// ModeTDP: user mengisi TDP, angsuran dihitung per tenor.
	ModeTDP Mode = "tdp"
	// ModeAngsuran: user mengisi target angsuran, TDP dihitung per tenor.
	ModeAngsuran Mode = "angsuran"
)

func (m Mode) Valid() bool {
	return m == ModeTDP || m == ModeAngsuran
}

// TenorOption adalah pasangan (tenor, bunga flat tahunan) dari sebuah program.
// IsActive nil dianggap aktif.
type TenorOption struct {
	Tenor      int
	AnnualRate float64
	IsActive   *bool
}

func (o TenorOption) active() bool {
	return o.IsActive == nil || *o.IsActive
}

// Row adalah satu baris hasil simulasi.
type Row struct {
	Tenor       int     `json:"tenor"`
	AnnualRate  float64 `json:"annual_rate"`
	DownPayment int64   `json:"down_payment"`
	Installment int64   `json:"installment"`
}

type SimulationInput struct {
	OTR                int64
	Mode               Mode
	Amount             int64 // TDP (mode tdp) atau target angsuran (mode angsuran)
	DownPaymentPercent float64
	Options            []TenorOption
}

/* =========================
   Formulas
========================= */

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// annuityFactor = r(1+r)^n / ((1+r)^n - 1); untuk r == 0 hasilnya 1/n.
func annuityFactor(r float64, n int) float64 {
	if r == 0 {
		return 1 / float64(n)
	}
	g := math.Pow(1+r, float64(n))
	return r * g / (g - 1)
}

// usableFactor: (1+r)^n yang overflow menghasilkan NaN/Inf, tidak bisa dipakai.
func usableFactor(f float64) bool {
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// toRupiah membulatkan ke rupiah; false jika hasil tidak muat di int64.
func toRupiah(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	v = math.Round(v)
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// Installment menghitung angsuran bulanan dari OTR dan TDP.
func Installment(otr, downPayment int64, tenorMonths int, annualRatePercent float64) (int64, error) {
	if otr <= 0 {
		return 0, invalid("otr", "harus lebih besar dari 0")
	}
	if tenorMonths <= 0 {
		return 0, invalid("tenor", "harus lebih besar dari 0")
	}
	if annualRatePercent < 0 || math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) {
		return 0, invalid("annual_rate", "tidak boleh negatif")
	}
	if downPayment < 0 {
		return 0, invalid("down_payment", "tidak boleh negatif")
	}
	if downPayment > otr {
		return 0, invalid("down_payment", "tidak boleh melebihi OTR")
	}
	if downPayment == otr {
		return 0, nil
	}

	factor := annuityFactor(monthlyRate(annualRatePercent), tenorMonths)
	if !usableFactor(factor) {
		return 0, invalid("annual_rate", "terlalu besar untuk tenor ini")
	}
	installment, ok := toRupiah(float64(otr-downPayment) * factor)
	if !ok {
		return 0, invalid("annual_rate", "angsuran melebihi batas perhitungan")
	}
	return installment, nil
}

// DownPaymentForInstallment adalah kebalikan Installment: dari target angsuran
// dihitung pokok yang bisa dibiayai, lalu TDP = OTR - pokok.
func DownPaymentForInstallment(otr, targetInstallment int64, tenorMonths int, annualRatePercent float64) (int64, error) {
	if otr <= 0 {
		return 0, invalid("otr", "harus lebih besar dari 0")
	}
	if tenorMonths <= 0 {
		return 0, invalid("tenor", "harus lebih besar dari 0")
	}
	if annualRatePercent < 0 || math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) {
		return 0, invalid("annual_rate", "tidak boleh negatif")
	}
	if targetInstallment <= 0 {
		return 0, invalid("installment", "harus lebih besar dari 0")
	}

	factor := annuityFactor(monthlyRate(annualRatePercent), tenorMonths)
	if !usableFactor(factor) {
		return 0, invalid("annual_rate", "terlalu besar untuk tenor ini")
	}
	raw := float64(otr) - float64(targetInstallment)/factor
	if raw < 0 {
		// selisih sebesar pembulatan angsuran (±0.5 rupiah) masih dianggap TDP nol
		if raw >= -RoundTripTolerance(tenorMonths, annualRatePercent) {
			return 0, nil
		}
		return 0, invalid("installment", "terlalu besar untuk OTR dan tenor ini (TDP menjadi negatif)")
	}
	return int64(math.Round(raw)), nil
}

// RoundTripTolerance adalah selisih TDP maksimum akibat pembulatan angsuran
// ke rupiah terdekat: 0.5 / annuityFactor, ditambah 0.5 dari pembulatan TDP.
func RoundTripTolerance(tenorMonths int, annualRatePercent float64) float64 {
	if tenorMonths <= 0 {
		return 0
	}
	return 0.5/annuityFactor(monthlyRate(annualRatePercent), tenorMonths) + 0.5
}

// MinimumDownPayment = round(pct/100 * otr).
func MinimumDownPayment(otr int64, downPaymentPercent float64) int64 {
	if otr <= 0 || downPaymentPercent <= 0 {
		return 0
	}
	return int64(math.Round(downPaymentPercent / 100 * float64(otr)))
}

/* =========================
   Simulation
========================= */

// ActiveOptions memfilter opsi aktif, membuang tenor duplikat (yang pertama menang)
// dan mengurutkan naik berdasarkan tenor.
func ActiveOptions(opts []TenorOption) []TenorOption {
	seen := make(map[int]struct{}, len(opts))
	out := make([]TenorOption, 0, len(opts))
	for _, o := range opts {
		if !o.active() {
			continue
		}
		if _, dup := seen[o.Tenor]; dup {
			continue
		}
		seen[o.Tenor] = struct{}{}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tenor < out[j].Tenor })
	return out
}

// Simulate menghitung tabel {tenor, TDP, angsuran} untuk setiap tenor aktif.
// Pada mode tdp, TDP di bawah minimum program ditolak dengan
// *BelowMinimumDownPaymentError dan tidak ada baris yang dihasilkan.
func Simulate(in SimulationInput) ([]Row, error) {
	if in.OTR <= 0 {
		return nil, invalid("otr", "harus lebih besar dari 0")
	}
	if !in.Mode.Valid() {
		return nil, invalid("mode", "harus 'tdp' atau 'angsuran'")
	}

	opts := ActiveOptions(in.Options)

	switch in.Mode {
	case ModeTDP:
		minimum := MinimumDownPayment(in.OTR, in.DownPaymentPercent)
		if in.Amount < minimum {
			return nil, &BelowMinimumDownPaymentError{Minimum: minimum, Given: in.Amount}
		}
		rows := make([]Row, 0, len(opts))
		for _, o := range opts {
			inst, err := Installment(in.OTR, in.Amount, o.Tenor, o.AnnualRate)
			if err != nil {
				return nil, err
			}
			rows = append(rows, Row{Tenor: o.Tenor, AnnualRate: o.AnnualRate, DownPayment: in.Amount, Installment: inst})
		}
		return rows, nil

	default: // ModeAngsuran
		rows := make([]Row, 0, len(opts))
		for _, o := range opts {
			dp, err := DownPaymentForInstallment(in.OTR, in.Amount, o.Tenor, o.AnnualRate)
			if err != nil {
				return nil, err
			}
			rows = append(rows, Row{Tenor: o.Tenor, AnnualRate: o.AnnualRate, DownPayment: dp, Installment: in.Amount})
		}
		return rows, nil
	}
}
