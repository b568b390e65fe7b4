package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	AppEnv           string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	// logger belum ada di titik ini, jadi pesan ditahan dulu
	msg := ""
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			msg = "Tidak menemukan .env file, menggunakan ENV dari sistem"
		} else {
			msg = ".env file berhasil dimuat"
		}
	} else {
		msg = "Running in Railway, menggunakan ENV dari sistem"
	}

	AppEnv = strings.ToLower(GetEnv("APP_ENV", "development"))
	InitLogger(AppEnv)
	Log.Info(msg, zap.String("app_env", AppEnv))

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		Log.Warn("JWT_SECRET belum diset!")
	}
	if JWTRefreshSecret == "" {
		Log.Warn("JWT_REFRESH_SECRET belum diset!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// =======================
// DATABASE DSN
// =======================

type DBConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

func DBConfigFromEnv() DBConfig {
	return DBConfig{
		User:     GetEnv("DB_USER"),
		Password: GetEnv("DB_PASSWORD"),
		Host:     GetEnv("DB_HOST", "localhost"),
		Port:     GetEnv("DB_PORT", "5432"),
		Name:     GetEnv("DB_NAME"),
		SSLMode:  GetEnv("DB_SSLMODE", "require"),
	}
}

// DSN lengkap + statement_timeout (cocok untuk PgBouncer transaction pooling)
func (c DBConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "require"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kreditku&options=-c%%20statement_timeout=3000",
		c.User, c.Password, c.Host, c.Port, c.Name, sslmode,
	)
}
