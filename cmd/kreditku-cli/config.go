package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	database "kreditku_backend/internals/databases"
)

// loadDBConfig: nilai ENV jadi default, file --config dan KREDITKU_DATABASE_* menimpa.
func loadDBConfig(path string) (configs.DBConfig, error) {
	env := configs.DBConfigFromEnv()

	v := viper.New()
	v.SetDefault("database.user", env.User)
	v.SetDefault("database.password", env.Password)
	v.SetDefault("database.host", env.Host)
	v.SetDefault("database.port", env.Port)
	v.SetDefault("database.name", env.Name)
	v.SetDefault("database.sslmode", env.SSLMode)

	v.SetEnvPrefix("KREDITKU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return configs.DBConfig{}, fmt.Errorf("gagal membaca config %s: %w", path, err)
		}
	}

	var cfg configs.DBConfig
	if err := v.UnmarshalKey("database", &cfg); err != nil {
		return configs.DBConfig{}, err
	}
	if cfg.Name == "" {
		return cfg, fmt.Errorf("database.name / DB_NAME belum diset")
	}
	return cfg, nil
}

func openDB(path string) (*gorm.DB, error) {
	cfg, err := loadDBConfig(path)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("ping DB gagal: %w", err)
	}
	return db, nil
}
