package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dealerModel "kreditku_backend/internals/features/dealers/model"
	programModel "kreditku_backend/internals/features/programs/model"
	programService "kreditku_backend/internals/features/programs/service"
	"kreditku_backend/internals/features/simulations/calculator"
	"kreditku_backend/internals/features/simulations/dto"
	"kreditku_backend/internals/features/simulations/model"
)

// Result adalah jawaban endpoint calculate (belum disimpan).
type Result struct {
	ProgramID          uuid.UUID             `json:"program_id"`
	ProgramName        string                `json:"program_name"`
	Brand              string                `json:"brand"`
	FinancingType      string                `json:"financing_type"`
	OTR                int64                 `json:"otr"`
	Mode               calculator.Mode       `json:"mode"`
	Amount             int64                 `json:"amount"`
	DownPaymentPercent float64               `json:"down_payment_percent"`
	MinimumDownPayment int64                 `json:"minimum_down_payment"`
	Rows               []model.SimulationRow `json:"rows"`
}

// Calculate menjalankan kalkulator untuk satu program.
// Error kalkulator (*InvalidInputError, *BelowMinimumDownPaymentError) diteruskan apa adanya.
func Calculate(p *programModel.ProgramModel, otr int64, mode calculator.Mode, amount int64) (Result, error) {
	if !p.ProgramIsActive {
		return Result{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Program tidak aktif")
	}

	dpPercent := programService.DownPaymentPercent(p)
	rows, err := calculator.Simulate(calculator.SimulationInput{
		OTR:                otr,
		Mode:               mode,
		Amount:             amount,
		DownPaymentPercent: dpPercent,
		Options:            programService.ToTenorOptions(p),
	})
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Program tidak punya tenor aktif")
	}

	minimum := calculator.MinimumDownPayment(otr, dpPercent)
	out := make([]model.SimulationRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.SimulationRow{
			Tenor:        r.Tenor,
			AnnualRate:   r.AnnualRate,
			DownPayment:  r.DownPayment,
			Installment:  r.Installment,
			BelowMinimum: r.DownPayment < minimum,
		})
	}

	return Result{
		ProgramID:          p.ProgramID,
		ProgramName:        p.ProgramName,
		Brand:              p.ProgramBrand,
		FinancingType:      string(p.ProgramFinancingType),
		OTR:                otr,
		Mode:               mode,
		Amount:             amount,
		DownPaymentPercent: dpPercent,
		MinimumDownPayment: minimum,
		Rows:               out,
	}, nil
}

// BuildRecord menyusun baris simulations dari hasil kalkulasi (snapshot by value).
func BuildRecord(userID uuid.UUID, req dto.SimulationRequest, res Result, p *programModel.ProgramModel, dealer *dealerModel.DealerModel) (*model.SimulationModel, error) {
	programID := p.ProgramID
	m := &model.SimulationModel{
		SimulationUserID:             userID,
		SimulationBrand:              res.Brand,
		SimulationFinancingType:      res.FinancingType,
		SimulationProgramID:          &programID,
		SimulationProgramName:        res.ProgramName,
		SimulationCustomerName:       req.SimulationCustomerName,
		SimulationOTR:                res.OTR,
		SimulationMode:               string(res.Mode),
		SimulationAmount:             res.Amount,
		SimulationDownPaymentPercent: p.ProgramDownPaymentPercent,
		SimulationMinimumDownPayment: res.MinimumDownPayment,
	}
	if dealer != nil {
		id, name := dealer.DealerID, dealer.DealerName
		m.SimulationDealerID = &id
		m.SimulationDealerName = &name
	}
	if err := m.SetRows(res.Rows); err != nil {
		return nil, err
	}
	return m, nil
}
