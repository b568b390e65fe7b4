package configs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log dipakai seluruh aplikasi. Default no-op supaya test & CLI aman
// walaupun InitLogger belum dipanggil.
var Log = zap.NewNop()

func InitLogger(env string) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = cfg.Build()
	}
	if err != nil {
		return
	}
	Log = logger
}

func SyncLogger() {
	_ = Log.Sync()
}
