package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dealerModel "kreditku_backend/internals/features/dealers/model"
	programModel "kreditku_backend/internals/features/programs/model"
	programService "kreditku_backend/internals/features/programs/service"
	userModel "kreditku_backend/internals/features/users/user/model"
)

// Catalog: data referensi yang dibaca saat order dibuat/diubah.
type Catalog interface {
	Program(ctx context.Context, id uuid.UUID) (*programModel.ProgramModel, error)
	Dealer(ctx context.Context, id uuid.UUID) (*dealerModel.DealerModel, error)
	User(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
}

type gormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) Catalog {
	return &gormCatalog{db: db}
}

func (g *gormCatalog) Program(ctx context.Context, id uuid.UUID) (*programModel.ProgramModel, error) {
	return programService.GetProgram(ctx, g.db, id)
}

func (g *gormCatalog) Dealer(ctx context.Context, id uuid.UUID) (*dealerModel.DealerModel, error) {
	var d dealerModel.DealerModel
	if err := g.db.WithContext(ctx).First(&d, "dealer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (g *gormCatalog) User(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := g.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
