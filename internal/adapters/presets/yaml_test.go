package presets_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/currency_exchange_tracker/internal/adapters/presets"
	"github.com/SscSPs/currency_exchange_tracker/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
baskets:
  - name: SDR
    description: IMF special drawing right weights
    base: usd
    weights:
      USD: 43.38
      EUR: 29.31
      cny: 12.28
      JPY: 7.59
      GBP: 7.44
`

func TestParse(t *testing.T) {
	ps, err := presets.Parse(strings.NewReader(sample), "presets.yaml")
	require.NoError(t, err)
	require.Len(t, ps, 1)

	assert.Equal(t, "SDR", ps[0].Name)
	assert.Equal(t, "USD", ps[0].Base)
	assert.Equal(t, 12.28, ps[0].Weights["CNY"])
	assert.Len(t, ps[0].Weights, 5)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"no name":       "baskets:\n  - weights: {USD: 100}\n",
		"no weights":    "baskets:\n  - name: x\n",
		"duplicate":     "baskets:\n  - name: x\n    weights: {USD: 100}\n  - name: x\n    weights: {EUR: 100}\n",
		"unknown field": "baskets:\n  - name: x\n    colour: red\n    weights: {USD: 100}\n",
	}
	for name, body := range cases {
		_, err := presets.Parse(strings.NewReader(body), "p.yaml")
		assert.ErrorIs(t, err, apperrors.ErrDataFormat, name)
	}
}

func TestLoadFile(t *testing.T) {
	ps, err := presets.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, ps)

	p := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sample), 0o644))
	ps, err = presets.LoadFile(p)
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}
