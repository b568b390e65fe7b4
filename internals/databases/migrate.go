package database

import (
	"gorm.io/gorm"

	activityModel "kreditku_backend/internals/features/activities/model"
	dealerModel "kreditku_backend/internals/features/dealers/model"
	notificationModel "kreditku_backend/internals/features/notifications/model"
	orderModel "kreditku_backend/internals/features/orders/model"
	programModel "kreditku_backend/internals/features/programs/model"
	simulationModel "kreditku_backend/internals/features/simulations/model"
	authModel "kreditku_backend/internals/features/users/auth/model"
	userModel "kreditku_backend/internals/features/users/user/model"
)

// AutoMigrate membuat/menyesuaikan semua tabel. Urutan penting untuk FK.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&dealerModel.DealerModel{},
		&programModel.ProgramModel{},
		&programModel.ProgramTenorModel{},
		&simulationModel.SimulationModel{},
		&orderModel.OrderModel{},
		&orderModel.OrderNoteModel{},
		&notificationModel.NotificationModel{},
		&activityModel.ActivityModel{},
	)
}
