package seeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	programModel "kreditku_backend/internals/features/programs/model"
)

func TestLoad_BundledSeedFile(t *testing.T) {
	f, err := Load(filepath.Join("data", "seed.yaml"))
	require.NoError(t, err)

	assert.Len(t, f.Users, 4)
	roles := map[string]bool{}
	for _, u := range f.Users {
		roles[u.Role] = true
	}
	assert.Equal(t, map[string]bool{"admin": true, "sales": true, "cmo": true, "cmh": true}, roles)
	require.NotEmpty(t, f.Programs)

	for _, s := range f.Programs {
		_, err := BuildProgram(s)
		assert.NoError(t, err, s.Name)
	}
}

func TestBuildProgram(t *testing.T) {
	p, err := BuildProgram(ProgramSeed{
		Name:               " Reguler ",
		Brand:              "Honda",
		DownPaymentPercent: "15.5",
		Tenors: []TenorSeed{
			{Months: 12, AnnualRate: "3.25"},
			{Months: 36, AnnualRate: "5"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Reguler", p.ProgramName)
	assert.Equal(t, programModel.FinancingKonvensional, p.ProgramFinancingType)
	assert.Equal(t, "15.5", p.ProgramDownPaymentPercent.String())
	require.Len(t, p.ProgramTenors, 2)
	assert.Equal(t, "3.25", p.ProgramTenors[0].ProgramTenorAnnualRate.String())
	assert.Equal(t, p.ProgramID, p.ProgramTenors[1].ProgramTenorProgramID)
}

func TestBuildProgram_Invalid(t *testing.T) {
	_, err := BuildProgram(ProgramSeed{Name: "X", DownPaymentPercent: "dua puluh"})
	assert.Error(t, err)

	_, err = BuildProgram(ProgramSeed{Name: "X", DownPaymentPercent: "20", FinancingType: "leasing"})
	assert.Error(t, err)

	_, err = BuildProgram(ProgramSeed{Name: "X", DownPaymentPercent: "20", Tenors: []TenorSeed{{Months: 12, AnnualRate: "?"}}})
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("users: [unclosed"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
