package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/features/programs/model"
)

func preloadTenors(db *gorm.DB) *gorm.DB {
	return db.Preload("ProgramTenors", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("program_tenor_months ASC")
	})
}

// GetProgram memuat program + tenor (urut naik).
func GetProgram(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ProgramModel, error) {
	var p model.ProgramModel
	if err := preloadTenors(db.WithContext(ctx)).First(&p, "program_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ReplaceTenors menghapus tenor lama lalu insert yang baru (dalam tx pemanggil).
func ReplaceTenors(tx *gorm.DB, programID uuid.UUID, tenors []model.ProgramTenorModel) error {
	if err := tx.Where("program_tenor_program_id = ?", programID).Delete(&model.ProgramTenorModel{}).Error; err != nil {
		return err
	}
	if len(tenors) == 0 {
		return nil
	}
	for i := range tenors {
		tenors[i].ProgramTenorID = uuid.Nil
		tenors[i].ProgramTenorProgramID = programID
	}
	return tx.Create(&tenors).Error
}
