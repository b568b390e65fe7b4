package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB() {
	db, err := Open(configs.DBConfigFromEnv())
	if err != nil {
		configs.Log.Fatal("Gagal konek DB", zap.Error(err))
	}
	DB = db
	configs.Log.Info("DB connected")
}

// Open dipakai server & CLI. Catatan: kalau pakai PgBouncer biarkan
// PreferSimpleProtocol=true (tidak ada cache prepared statement).
func Open(cfg configs.DBConfig) (*gorm.DB, error) {
	configs.Log.Info("Koneksi ke PostgreSQL...", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		configs.Log.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(DB); err != nil {
			configs.Log.Warn("warm-up ping err", zap.Error(err))
			return
		}
		// query paling sering: list order per status
		DB.Exec("SELECT 1 FROM orders WHERE order_status = 'Baru' LIMIT 1")
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
