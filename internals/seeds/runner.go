package seeds

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	dealerModel "kreditku_backend/internals/features/dealers/model"
	programModel "kreditku_backend/internals/features/programs/model"
	authHelper "kreditku_backend/internals/features/users/auth/helper"
	userModel "kreditku_backend/internals/features/users/user/model"
	helper "kreditku_backend/internals/helpers"
)

const DefaultPath = "internals/seeds/data/seed.yaml"

// RunAllSeeds idempotent: data yang sudah ada (email / nama+brand) dilewati.
func RunAllSeeds(db *gorm.DB, path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := SeedUsers(tx, f.Users); err != nil {
			return err
		}
		if err := SeedDealers(tx, f.Dealers); err != nil {
			return err
		}
		return SeedPrograms(tx, f.Programs)
	})
}

func SeedUsers(db *gorm.DB, seeds []UserSeed) error {
	var existing []string
	if err := db.Model(&userModel.UserModel{}).Pluck("email", &existing).Error; err != nil {
		return fmt.Errorf("gagal ambil email yang sudah ada: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, e := range existing {
		have[e] = true
	}

	var rows []userModel.UserModel
	for _, s := range seeds {
		email := userModel.NormalizeEmail(s.Email)
		if have[email] {
			configs.Log.Info("user sudah ada, dilewati", zap.String("email", email))
			continue
		}
		hash, err := authHelper.HashPassword(s.Password)
		if err != nil {
			return fmt.Errorf("hash password %s: %w", email, err)
		}
		have[email] = true
		rows = append(rows, userModel.UserModel{
			FullName: strings.TrimSpace(s.FullName),
			Email:    email,
			Phone:    s.Phone,
			Password: hash,
			Role:     strings.ToLower(strings.TrimSpace(s.Role)),
			IsActive: true,
		})
	}
	if len(rows) == 0 {
		configs.Log.Info("tidak ada user baru untuk diinsert")
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("gagal bulk insert users: %w", err)
	}
	configs.Log.Info("seed users", zap.Int("inserted", len(rows)))
	return nil
}

func nameBrandKey(name, brand string) string {
	return helper.Slugify(name, 0) + "|" + helper.Slugify(brand, 0)
}

func SeedDealers(db *gorm.DB, seeds []DealerSeed) error {
	var existing []dealerModel.DealerModel
	if err := db.Select("dealer_name", "dealer_brand").Find(&existing).Error; err != nil {
		return fmt.Errorf("gagal ambil dealer yang sudah ada: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[nameBrandKey(d.DealerName, d.DealerBrand)] = true
	}

	var rows []dealerModel.DealerModel
	for _, s := range seeds {
		k := nameBrandKey(s.Name, s.Brand)
		if have[k] {
			continue
		}
		have[k] = true
		rows = append(rows, dealerModel.DealerModel{
			DealerName:     strings.TrimSpace(s.Name),
			DealerBrand:    strings.TrimSpace(s.Brand),
			DealerCity:     s.City,
			DealerAddress:  s.Address,
			DealerPhone:    s.Phone,
			DealerPICName:  s.PICName,
			DealerIsActive: true,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("gagal bulk insert dealers: %w", err)
	}
	configs.Log.Info("seed dealers", zap.Int("inserted", len(rows)))
	return nil
}

// BuildProgram mengubah ProgramSeed jadi model + tenor (tanpa menyentuh DB).
func BuildProgram(s ProgramSeed) (*programModel.ProgramModel, error) {
	dp, err := decimal.NewFromString(strings.TrimSpace(s.DownPaymentPercent))
	if err != nil {
		return nil, fmt.Errorf("program %s: down_payment_percent tidak valid: %w", s.Name, err)
	}
	ft := programModel.FinancingType(strings.ToLower(strings.TrimSpace(s.FinancingType)))
	if ft == "" {
		ft = programModel.FinancingKonvensional
	}
	if !ft.Valid() {
		return nil, fmt.Errorf("program %s: financing_type %q tidak dikenal", s.Name, s.FinancingType)
	}

	p := &programModel.ProgramModel{
		ProgramID:                 uuid.New(),
		ProgramName:               strings.TrimSpace(s.Name),
		ProgramBrand:              strings.TrimSpace(s.Brand),
		ProgramFinancingType:      ft,
		ProgramDescription:        s.Description,
		ProgramDownPaymentPercent: dp,
		ProgramIsActive:           true,
	}
	for _, t := range s.Tenors {
		rate, err := decimal.NewFromString(strings.TrimSpace(t.AnnualRate))
		if err != nil {
			return nil, fmt.Errorf("program %s tenor %d: annual_rate tidak valid: %w", s.Name, t.Months, err)
		}
		p.ProgramTenors = append(p.ProgramTenors, programModel.ProgramTenorModel{
			ProgramTenorProgramID:  p.ProgramID,
			ProgramTenorMonths:     t.Months,
			ProgramTenorAnnualRate: rate,
		})
	}
	return p, nil
}

func SeedPrograms(db *gorm.DB, seeds []ProgramSeed) error {
	var existing []programModel.ProgramModel
	if err := db.Select("program_name", "program_brand").Find(&existing).Error; err != nil {
		return fmt.Errorf("gagal ambil program yang sudah ada: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[nameBrandKey(p.ProgramName, p.ProgramBrand)] = true
	}

	inserted := 0
	for _, s := range seeds {
		k := nameBrandKey(s.Name, s.Brand)
		if have[k] {
			continue
		}
		p, err := BuildProgram(s)
		if err != nil {
			return err
		}
		// Create ikut menyimpan ProgramTenors (asosiasi has-many)
		if err := db.Create(p).Error; err != nil {
			return fmt.Errorf("gagal insert program %s: %w", s.Name, err)
		}
		have[k] = true
		inserted++
	}
	configs.Log.Info("seed programs", zap.Int("inserted", inserted))
	return nil
}
