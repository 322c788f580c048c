package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreekanth370/gammapy/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Target: config.PositionConfig{RADeg: 83.633, DecDeg: 22.014},
		Energy: config.EnergyGridConfig{MinTeV: 0.1, MaxTeV: 10, Bins: 10},
		ETrue:  config.EnergyGridConfig{MinTeV: 0.1, MaxTeV: 10, Bins: 6},
		EReco:  config.EnergyGridConfig{MinTeV: 0.05, MaxTeV: 20, Bins: 8},
		Observations: []config.ObservationConfig{
			{
				ID:        1,
				Pointing:  config.PositionConfig{RADeg: 83.633, DecDeg: 22.514},
				LivetimeS: 1687,
				PSF:       config.PSFModelConfig{SigmasDeg: []float64{0.08, 0.2}, Weights: []float64{3, 1}, OffsetScale: 0.3},
				Aeff:      config.AeffModelConfig{AreaMaxM2: 1e5, EThreshTeV: 0.08, FieldOfViewDeg: 2.5},
				Edisp:     config.EdispModelConfig{Sigma: 0.08, OffsetScale: 0.2},
			},
			{
				ID:        2,
				Pointing:  config.PositionConfig{RADeg: 83.633, DecDeg: 21.514},
				LivetimeS: 1523,
				PSF:       config.PSFModelConfig{SigmasDeg: []float64{0.08, 0.2}, Weights: []float64{3, 1}, OffsetScale: 0.3},
				Aeff:      config.AeffModelConfig{AreaMaxM2: 1e5, EThreshTeV: 0.08, FieldOfViewDeg: 2.5},
				Edisp:     config.EdispModelConfig{Sigma: 0.08, OffsetScale: 0.2},
			},
		},
	}
}

func TestRunPSFWritesTable(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.RunPSF(&buf))

	var result struct {
		EnergyTeV   []float64   `json:"energy_tev"`
		RadDeg      []float64   `json:"rad_deg"`
		ExposureM2S []float64   `json:"exposure_m2s"`
		PSFValue    [][]float64 `json:"psf_value"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Len(t, result.EnergyTeV, 11)
	assert.Len(t, result.ExposureM2S, 11)
	require.Len(t, result.PSFValue, 11)
	assert.Len(t, result.PSFValue[0], len(result.RadDeg))
	for i, e := range result.ExposureM2S {
		assert.Greater(t, e, 0.0, "exposure at energy node %d", i)
	}
}

func TestRunEdispWritesMatrix(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.RunEdisp(&buf))

	var result struct {
		ETrueTeV []float64   `json:"e_true_tev"`
		ERecoTeV []float64   `json:"e_reco_tev"`
		Migra    [][]float64 `json:"migra"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Len(t, result.ETrueTeV, 7)
	assert.Len(t, result.ERecoTeV, 9)
	require.Len(t, result.Migra, 6)
	assert.Len(t, result.Migra[0], 8)
}

func TestRunEdispRequiresGrids(t *testing.T) {
	cfg := testConfig()
	cfg.ETrue = config.EnergyGridConfig{}
	svc, err := New(cfg)
	require.NoError(t, err)
	require.Error(t, svc.RunEdisp(&bytes.Buffer{}))
}
