package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dealerModel "kreditku_backend/internals/features/dealers/model"
	programModel "kreditku_backend/internals/features/programs/model"
	"kreditku_backend/internals/features/simulations/calculator"
	"kreditku_backend/internals/features/simulations/dto"
)

func program(active bool, tenors ...programModel.ProgramTenorModel) *programModel.ProgramModel {
	return &programModel.ProgramModel{
		ProgramID:                 uuid.New(),
		ProgramName:               "Promo Akhir Tahun",
		ProgramBrand:              "Toyota",
		ProgramFinancingType:      programModel.FinancingKonvensional,
		ProgramDownPaymentPercent: decimal.NewFromInt(20),
		ProgramIsActive:           active,
		ProgramTenors:             tenors,
	}
}

func tenor(months int, rate string) programModel.ProgramTenorModel {
	return programModel.ProgramTenorModel{ProgramTenorMonths: months, ProgramTenorAnnualRate: decimal.RequireFromString(rate)}
}

func TestCalculate_TDPMode(t *testing.T) {
	p := program(true, tenor(36, "5"), tenor(12, "3"))

	res, err := Calculate(p, 200_000_000, calculator.ModeTDP, 40_000_000)
	require.NoError(t, err)

	assert.Equal(t, int64(40_000_000), res.MinimumDownPayment)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 12, res.Rows[0].Tenor)
	assert.Equal(t, 36, res.Rows[1].Tenor)

	want, err := calculator.Installment(200_000_000, 40_000_000, 36, 5)
	require.NoError(t, err)
	assert.Equal(t, want, res.Rows[1].Installment)
	for _, r := range res.Rows {
		assert.False(t, r.BelowMinimum)
		assert.Equal(t, int64(40_000_000), r.DownPayment)
	}
}

func TestCalculate_BelowMinimumIsRefused(t *testing.T) {
	p := program(true, tenor(36, "5"))

	res, err := Calculate(p, 200_000_000, calculator.ModeTDP, 39_999_999)
	var below *calculator.BelowMinimumDownPaymentError
	require.ErrorAs(t, err, &below)
	assert.Equal(t, int64(40_000_000), below.Minimum)
	assert.Empty(t, res.Rows)
}

func TestCalculate_AngsuranFlagsRowsBelowMinimum(t *testing.T) {
	p := program(true, tenor(12, "5"), tenor(48, "5"))

	// angsuran 4jt: tenor pendek butuh TDP besar, tenor panjang TDP kecil
	res, err := Calculate(p, 200_000_000, calculator.ModeAngsuran, 4_000_000)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.False(t, res.Rows[0].BelowMinimum, "tenor 12: TDP jauh di atas minimum")
	assert.True(t, res.Rows[1].BelowMinimum, "tenor 48: TDP di bawah 20 persen OTR")
	for _, r := range res.Rows {
		assert.Equal(t, int64(4_000_000), r.Installment)
	}
}

func TestCalculate_InactiveProgram(t *testing.T) {
	_, err := Calculate(program(false, tenor(12, "5")), 100_000_000, calculator.ModeTDP, 30_000_000)

	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestCalculate_NoActiveTenor(t *testing.T) {
	off := false
	tn := tenor(12, "5")
	tn.ProgramTenorIsActive = &off

	_, err := Calculate(program(true, tn), 100_000_000, calculator.ModeTDP, 30_000_000)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestCalculate_InvalidInputPropagates(t *testing.T) {
	_, err := Calculate(program(true, tenor(12, "5")), 0, calculator.ModeTDP, 1)
	assert.ErrorIs(t, err, calculator.ErrInvalidInput)
}

func TestBuildRecord_SnapshotsProgramAndDealer(t *testing.T) {
	p := program(true, tenor(24, "4"))
	res, err := Calculate(p, 150_000_000, calculator.ModeTDP, 30_000_000)
	require.NoError(t, err)

	dealer := &dealerModel.DealerModel{DealerID: uuid.New(), DealerName: "Auto2000 Sudirman"}
	userID := uuid.New()
	rec, err := BuildRecord(userID, dto.SimulationRequest{SimulationMode: "tdp"}, res, p, dealer)
	require.NoError(t, err)

	assert.Equal(t, userID, rec.SimulationUserID)
	assert.Equal(t, "Promo Akhir Tahun", rec.SimulationProgramName)
	assert.Equal(t, "Toyota", rec.SimulationBrand)
	require.NotNil(t, rec.SimulationDealerName)
	assert.Equal(t, "Auto2000 Sudirman", *rec.SimulationDealerName)
	assert.Equal(t, int64(30_000_000), rec.SimulationMinimumDownPayment)

	rows, err := rec.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, res.Rows[0], rows[0])
}
