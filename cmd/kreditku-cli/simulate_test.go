package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTenors(t *testing.T) {
	opts, err := parseTenors(" 12=3, 36=5.25 ,")
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, 12, opts[0].Tenor)
	assert.InDelta(t, 5.25, opts[1].AnnualRate, 1e-9)

	for _, bad := range []string{"", "12", "x=3", "12=abc"} {
		_, err := parseTenors(bad)
		assert.Error(t, err, bad)
	}
}

func TestSimulateCmd_Table(t *testing.T) {
	cmd := simulateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	// 24 bulan: TDP hasil hitung < minimum 20% → ditandai "*"
	cmd.SetArgs([]string{"--otr", "30000000", "--mode", "angsuran", "--amount", "1200000", "--dp-percent", "20", "--tenors", "12=3,24=4"})

	require.NoError(t, cmd.Execute())
	s := out.String()
	assert.Contains(t, s, "TENOR")
	assert.Equal(t, 3, strings.Count(s, "\n")-1) // header + 2 baris
	assert.Contains(t, s, "minimum TDP: 6000000")
	assert.Equal(t, 1, strings.Count(s, " *"))
}

func TestSimulateCmd_InvalidMode(t *testing.T) {
	cmd := simulateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--otr", "30000000", "--amount", "3000000", "--mode", "cicilan"})
	assert.Error(t, cmd.Execute())
}
