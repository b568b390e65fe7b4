package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestInstallment_GoldenValue(t *testing.T) {
	inst, err := Installment(200_000_000, 40_000_000, 36, 5)
	require.NoError(t, err)

	// principal 160jt, r = 0.05/12, n = 36
	assert.Equal(t, int64(4_795_344), inst)
	assert.InDelta(t, 4_798_000, inst, 3_000)
}

func TestInstallment_ZeroRate(t *testing.T) {
	cases := []struct {
		otr, dp int64
		tenor   int
	}{
		{120_000_000, 20_000_000, 12},
		{100_000_000, 0, 7},
		{35_500_000, 5_000_000, 11},
	}
	for _, c := range cases {
		inst, err := Installment(c.otr, c.dp, c.tenor, 0)
		require.NoError(t, err)
		want := int64(math.Round(float64(c.otr-c.dp) / float64(c.tenor)))
		assert.Equal(t, want, inst)
	}
}

func TestInstallment_ZeroPrincipal(t *testing.T) {
	inst, err := Installment(50_000_000, 50_000_000, 24, 9.5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inst)
}

func TestInstallment_InvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		otr, dp int64
		tenor   int
		rate    float64
		field   string
	}{
		{"otr zero", 0, 0, 12, 5, "otr"},
		{"otr negative", -1, 0, 12, 5, "otr"},
		{"tenor zero", 100, 0, 0, 5, "tenor"},
		{"rate negative", 100, 0, 12, -1, "annual_rate"},
		{"dp negative", 100, -5, 12, 5, "down_payment"},
		{"dp above otr", 100, 101, 12, 5, "down_payment"},
		{"rate overflows annuity", 200_000_000, 0, 360, 1e6, "annual_rate"},
		{"installment beyond int64", 200_000_000, 0, 1, 1e20, "annual_rate"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Installment(c.otr, c.dp, c.tenor, c.rate)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var ie *InvalidInputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, c.field, ie.Field)
		})
	}
}

func TestDownPaymentForInstallment_RoundTrip(t *testing.T) {
	cases := []struct {
		otr, dp int64
		tenor   int
		rate    float64
	}{
		{200_000_000, 40_000_000, 36, 5},
		{150_000_000, 30_000_000, 12, 7.5},
		{100_000_000, 0, 60, 12},
		{275_000_000, 55_000_000, 48, 0},
		{18_500_000, 2_000_000, 24, 21},
	}
	for _, c := range cases {
		inst, err := Installment(c.otr, c.dp, c.tenor, c.rate)
		require.NoError(t, err)

		back, err := DownPaymentForInstallment(c.otr, inst, c.tenor, c.rate)
		require.NoError(t, err)
		assert.InDelta(t, c.dp, back, RoundTripTolerance(c.tenor, c.rate),
			"otr=%d dp=%d tenor=%d rate=%v", c.otr, c.dp, c.tenor, c.rate)
	}
}

func TestDownPaymentForInstallment_TooHigh(t *testing.T) {
	// angsuran 10jt x 36 bulan jauh melebihi OTR 100jt
	_, err := DownPaymentForInstallment(100_000_000, 10_000_000, 36, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDownPaymentForInstallment_RateOverflow(t *testing.T) {
	dp, err := DownPaymentForInstallment(200_000_000, 5_000_000, 360, 1e6)
	require.Error(t, err)
	assert.Zero(t, dp)

	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "annual_rate", ie.Field)
}

func TestSimulate_RateOverflowIsInvalid(t *testing.T) {
	rows, err := Simulate(SimulationInput{
		OTR:     200_000_000,
		Mode:    ModeTDP,
		Amount:  40_000_000,
		Options: []TenorOption{{Tenor: 360, AnnualRate: 1e6}},
	})
	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDownPaymentForInstallment_InvalidTarget(t *testing.T) {
	_, err := DownPaymentForInstallment(100_000_000, 0, 12, 5)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = DownPaymentForInstallment(100_000_000, 1_000_000, -3, 5)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMinimumDownPayment(t *testing.T) {
	assert.Equal(t, int64(30_000_000), MinimumDownPayment(150_000_000, 20))
	assert.Equal(t, int64(1_850_000), MinimumDownPayment(18_500_000, 10))
	assert.Equal(t, int64(3), MinimumDownPayment(25, 10)) // 2.5 dibulatkan ke atas
	assert.Equal(t, int64(0), MinimumDownPayment(100_000_000, 0))
}

func TestSimulate_TDPMode(t *testing.T) {
	rows, err := Simulate(SimulationInput{
		OTR:                200_000_000,
		Mode:               ModeTDP,
		Amount:             40_000_000,
		DownPaymentPercent: 20,
		Options: []TenorOption{
			{Tenor: 36, AnnualRate: 5},
			{Tenor: 12, AnnualRate: 4},
			{Tenor: 24, AnnualRate: 4.5, IsActive: boolPtr(false)},
			{Tenor: 48, AnnualRate: 6, IsActive: boolPtr(true)},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []int{12, 36, 48}, []int{rows[0].Tenor, rows[1].Tenor, rows[2].Tenor})
	for _, r := range rows {
		assert.Equal(t, int64(40_000_000), r.DownPayment)
		assert.Greater(t, r.Installment, int64(0))
	}
	assert.Equal(t, int64(4_795_344), rows[1].Installment)
}

func TestSimulate_AngsuranMode(t *testing.T) {
	rows, err := Simulate(SimulationInput{
		OTR:    200_000_000,
		Mode:   ModeAngsuran,
		Amount: 4_795_344,
		Options: []TenorOption{
			{Tenor: 36, AnnualRate: 5},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 40_000_000, rows[0].DownPayment, RoundTripTolerance(36, 5))
	assert.Equal(t, int64(4_795_344), rows[0].Installment)
}

func TestSimulate_BelowMinimumDownPayment(t *testing.T) {
	rows, err := Simulate(SimulationInput{
		OTR:                200_000_000,
		Mode:               ModeTDP,
		Amount:             10_000_000,
		DownPaymentPercent: 15,
		Options:            []TenorOption{{Tenor: 12, AnnualRate: 5}},
	})
	require.Error(t, err)
	assert.Empty(t, rows)
	assert.True(t, errors.Is(err, ErrBelowMinimumDownPayment))

	var be *BelowMinimumDownPaymentError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, int64(30_000_000), be.Minimum)
	assert.Equal(t, int64(10_000_000), be.Given)
}

func TestSimulate_AngsuranModeIgnoresMinimum(t *testing.T) {
	_, err := Simulate(SimulationInput{
		OTR:                100_000_000,
		Mode:               ModeAngsuran,
		Amount:             2_000_000,
		DownPaymentPercent: 90,
		Options:            []TenorOption{{Tenor: 12, AnnualRate: 5}},
	})
	require.NoError(t, err)
}

func TestSimulate_InvalidMode(t *testing.T) {
	_, err := Simulate(SimulationInput{OTR: 100, Mode: "cicilan"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSimulate_NoActiveOptions(t *testing.T) {
	rows, err := Simulate(SimulationInput{
		OTR:     100_000_000,
		Mode:    ModeTDP,
		Amount:  20_000_000,
		Options: []TenorOption{{Tenor: 12, IsActive: boolPtr(false)}},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestActiveOptions_DuplicateTenorKeepsFirst(t *testing.T) {
	opts := ActiveOptions([]TenorOption{
		{Tenor: 24, AnnualRate: 6},
		{Tenor: 12, AnnualRate: 5},
		{Tenor: 24, AnnualRate: 9},
	})
	require.Len(t, opts, 2)
	assert.Equal(t, 12, opts[0].Tenor)
	assert.Equal(t, 6.0, opts[1].AnnualRate)
}
