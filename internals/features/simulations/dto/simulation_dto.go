package dto

import (
	"strings"

	"github.com/google/uuid"
)

type SimulationRequest struct {
	SimulationProgramID    uuid.UUID  `json:"simulation_program_id" validate:"required"`
	SimulationDealerID     *uuid.UUID `json:"simulation_dealer_id,omitempty"`
	SimulationCustomerName *string    `json:"simulation_customer_name,omitempty" validate:"omitempty,max=120"`
	SimulationOTR          int64      `json:"simulation_otr" validate:"required,gt=0"`
	SimulationMode         string     `json:"simulation_mode" validate:"required,oneof=tdp angsuran"`
	// TDP (mode tdp) atau target angsuran (mode angsuran)
	SimulationAmount int64 `json:"simulation_amount" validate:"required,gt=0"`
}

func (r *SimulationRequest) Normalize() {
	r.SimulationMode = strings.ToLower(strings.TrimSpace(r.SimulationMode))
	if r.SimulationCustomerName != nil {
		v := strings.TrimSpace(*r.SimulationCustomerName)
		if v == "" {
			r.SimulationCustomerName = nil
		} else {
			r.SimulationCustomerName = &v
		}
	}
}
