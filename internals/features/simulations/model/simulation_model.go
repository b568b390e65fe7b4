package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SimulationRow disimpan di kolom JSON; below_minimum hanya bermakna pada mode angsuran.
type SimulationRow struct {
	Tenor        int     `json:"tenor"`
	AnnualRate   float64 `json:"annual_rate"`
	DownPayment  int64   `json:"down_payment"`
	Installment  int64   `json:"installment"`
	BelowMinimum bool    `json:"below_minimum"`
}

// SimulationModel: hasil kalkulator yang disimpan. Tidak pernah di-update.
type SimulationModel struct {
	SimulationID     uuid.UUID `json:"simulation_id" gorm:"column:simulation_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SimulationUserID uuid.UUID `json:"simulation_user_id" gorm:"column:simulation_user_id;type:uuid;not null;index"`

	// snapshot input
	SimulationBrand         string     `json:"simulation_brand" gorm:"column:simulation_brand;type:varchar(60);not null"`
	SimulationDealerID      *uuid.UUID `json:"simulation_dealer_id,omitempty" gorm:"column:simulation_dealer_id;type:uuid"`
	SimulationDealerName    *string    `json:"simulation_dealer_name,omitempty" gorm:"column:simulation_dealer_name;type:varchar(120)"`
	SimulationFinancingType string     `json:"simulation_financing_type" gorm:"column:simulation_financing_type;type:varchar(20);not null"`
	SimulationProgramID     *uuid.UUID `json:"simulation_program_id,omitempty" gorm:"column:simulation_program_id;type:uuid"`
	SimulationProgramName   string     `json:"simulation_program_name" gorm:"column:simulation_program_name;type:varchar(120);not null"`
	SimulationCustomerName  *string    `json:"simulation_customer_name,omitempty" gorm:"column:simulation_customer_name;type:varchar(120)"`

	SimulationOTR                int64           `json:"simulation_otr" gorm:"column:simulation_otr;not null"`
	SimulationMode               string          `json:"simulation_mode" gorm:"column:simulation_mode;type:varchar(10);not null"`
	SimulationAmount             int64           `json:"simulation_amount" gorm:"column:simulation_amount;not null"`
	SimulationDownPaymentPercent decimal.Decimal `json:"simulation_down_payment_percent" gorm:"column:simulation_down_payment_percent;type:numeric(5,2);not null;default:0"`
	SimulationMinimumDownPayment int64           `json:"simulation_minimum_down_payment" gorm:"column:simulation_minimum_down_payment;not null"`

	// []SimulationRow
	SimulationRows datatypes.JSON `json:"simulation_rows" gorm:"column:simulation_rows;type:jsonb;not null"`

	SimulationCreatedAt time.Time `json:"simulation_created_at" gorm:"column:simulation_created_at;type:timestamptz;autoCreateTime;index"`
}

func (SimulationModel) TableName() string { return "simulations" }

func (m *SimulationModel) SetRows(rows []SimulationRow) error {
	if rows == nil {
		rows = []SimulationRow{}
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	m.SimulationRows = datatypes.JSON(b)
	return nil
}

func (m *SimulationModel) Rows() ([]SimulationRow, error) {
	var rows []SimulationRow
	if len(m.SimulationRows) == 0 {
		return rows, nil
	}
	err := json.Unmarshal(m.SimulationRows, &rows)
	return rows, err
}
