package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/boom-loudness-etl/internal/exposure"
)

func TestBuildDividers_DefaultsMatchStudyBins(t *testing.T) {
	dividers, err := buildDividers(75.5, 85.5, 10)
	require.NoError(t, err)
	assert.Equal(t, exposure.DefaultBins(), dividers)
}

func TestBuildDividers_PartialOverride(t *testing.T) {
	// Only the range changed; the divider count stays at the default.
	dividers, err := buildDividers(70, 90, 10)
	require.NoError(t, err)
	require.Len(t, dividers, 11)
	assert.InDelta(t, 70.0, dividers[0], 1e-9)
	assert.InDelta(t, 90.0, dividers[10], 1e-9)

	// Only the count changed; the range stays at the default.
	dividers, err = buildDividers(75.5, 85.5, 20)
	require.NoError(t, err)
	require.Len(t, dividers, 21)
	assert.InDelta(t, 75.5, dividers[0], 1e-9)
	assert.InDelta(t, 85.5, dividers[20], 1e-9)
}

func TestBuildDividers_Invalid(t *testing.T) {
	_, err := buildDividers(75.5, 85.5, 0)
	assert.ErrorContains(t, err, "-bins must be positive")

	_, err = buildDividers(90, 70, 10)
	assert.ErrorContains(t, err, "must be below")
}

func TestReadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counties.json")
	doc := `[{"fips": "48113", "name": "Dallas County", "state": "TX", "population": 2586552, "pldb": 81.3}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	rows, err := readRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "48113", rows[0].FIPS)
	assert.Equal(t, "Dallas County", rows[0].Name)
	assert.InDelta(t, 81.3, rows[0].PLdB, 1e-9)
}

func TestReadRows_Errors(t *testing.T) {
	_, err := readRows(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read input")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = readRows(path)
	assert.ErrorContains(t, err, "parse input")
}
