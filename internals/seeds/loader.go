package seeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type UserSeed struct {
	FullName string  `yaml:"full_name"`
	Email    string  `yaml:"email"`
	Phone    *string `yaml:"phone"`
	Password string  `yaml:"password"`
	Role     string  `yaml:"role"`
}

type DealerSeed struct {
	Name    string  `yaml:"name"`
	Brand   string  `yaml:"brand"`
	City    *string `yaml:"city"`
	Address *string `yaml:"address"`
	Phone   *string `yaml:"phone"`
	PICName *string `yaml:"pic_name"`
}

// angka desimal ditulis sebagai string ("20", "3.5") supaya presisi terjaga
type TenorSeed struct {
	Months     int    `yaml:"months"`
	AnnualRate string `yaml:"annual_rate"`
}

type ProgramSeed struct {
	Name               string      `yaml:"name"`
	Brand              string      `yaml:"brand"`
	FinancingType      string      `yaml:"financing_type"`
	Description        *string     `yaml:"description"`
	DownPaymentPercent string      `yaml:"down_payment_percent"`
	Tenors             []TenorSeed `yaml:"tenors"`
}

type File struct {
	Users    []UserSeed    `yaml:"users"`
	Dealers  []DealerSeed  `yaml:"dealers"`
	Programs []ProgramSeed `yaml:"programs"`
}

func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("gagal decode YAML seed: %w", err)
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file seed %s: %w", path, err)
	}
	return Parse(b)
}
