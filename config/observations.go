package config

import (
	"fmt"
	"time"

	"github.com/sreekanth370/gammapy/core/irf"
	"github.com/sreekanth370/gammapy/core/model"
	"github.com/sreekanth370/gammapy/core/units"
)

// ObservationConfig defines one observation run with analytic response
// models.
type ObservationConfig struct {
	ID        int64            `json:"id"`
	Pointing  PositionConfig   `json:"pointing"`
	LivetimeS float64          `json:"livetime_s"`
	PSF       PSFModelConfig   `json:"psf"`
	Aeff      AeffModelConfig  `json:"aeff"`
	Edisp     EdispModelConfig `json:"edisp"`
}

// PSFModelConfig parameterises a multi-Gaussian PSF. The native grids are the
// ones reported when no grid is requested explicitly.
type PSFModelConfig struct {
	SigmasDeg    []float64        `json:"sigmas_deg"`
	Weights      []float64        `json:"weights"`
	EnergyIndex  float64          `json:"energy_index"`
	OffsetScale  float64          `json:"offset_scale"`
	NativeEnergy EnergyGridConfig `json:"native_energy"`
	NativeRad    RadGridConfig    `json:"native_rad"`
}

// AeffModelConfig parameterises the analytic effective area.
type AeffModelConfig struct {
	AreaMaxM2      float64 `json:"area_max_m2"`
	EThreshTeV     float64 `json:"e_thresh_tev"`
	FieldOfViewDeg float64 `json:"field_of_view_deg"`
}

// EdispModelConfig parameterises the Gaussian energy-migration model.
type EdispModelConfig struct {
	Sigma       float64 `json:"sigma"`
	Bias        float64 `json:"bias"`
	OffsetScale float64 `json:"offset_scale"`
}

// SetDefaults fills the native grids and weights when omitted.
func (o *ObservationConfig) SetDefaults() {
	if o.PSF.NativeEnergy.Bins == 0 {
		o.PSF.NativeEnergy = EnergyGridConfig{MinTeV: 0.01, MaxTeV: 100, Bins: 30}
	}
	if o.PSF.NativeRad.Bins == 0 {
		o.PSF.NativeRad = RadGridConfig{MaxDeg: 1, Bins: 200}
	}
	if o.PSF.Weights == nil {
		o.PSF.Weights = make([]float64, len(o.PSF.SigmasDeg))
		for i := range o.PSF.Weights {
			o.PSF.Weights[i] = 1
		}
	}
}

// Build assembles the observation with its analytic responses.
func (o ObservationConfig) Build() (model.Observation, error) {
	o.SetDefaults()

	nativeEnergy, err := o.PSF.NativeEnergy.Grid()
	if err != nil {
		return model.Observation{}, fmt.Errorf("observation %d: native energy grid: %w", o.ID, err)
	}
	nativeRad, err := o.PSF.NativeRad.Grid()
	if err != nil {
		return model.Observation{}, fmt.Errorf("observation %d: native rad grid: %w", o.ID, err)
	}
	sigmas := make([]units.Angle, len(o.PSF.SigmasDeg))
	for i, s := range o.PSF.SigmasDeg {
		sigmas[i] = units.Deg(s)
	}
	psf, err := irf.NewMultiGaussPSF(sigmas, o.PSF.Weights, o.PSF.EnergyIndex, o.PSF.OffsetScale, nativeEnergy, nativeRad)
	if err != nil {
		return model.Observation{}, fmt.Errorf("observation %d: psf: %w", o.ID, err)
	}

	obs := model.Observation{
		ID:       o.ID,
		Pointing: o.Pointing.Position(),
		PSF:      psf,
		Aeff: &irf.EffectiveArea2D{
			AreaMax:     o.Aeff.AreaMaxM2,
			EThresh:     units.TeV(o.Aeff.EThreshTeV),
			FieldOfView: units.Deg(o.Aeff.FieldOfViewDeg),
		},
		Edisp: &irf.GaussianEnergyDispersion{
			Sigma:       o.Edisp.Sigma,
			Bias:        o.Edisp.Bias,
			OffsetScale: o.Edisp.OffsetScale,
		},
		Livetime: time.Duration(o.LivetimeS * float64(time.Second)),
	}
	if err := obs.Validate(); err != nil {
		return model.Observation{}, err
	}
	return obs, nil
}

// BuildObservations assembles every configured observation.
func (c *Config) BuildObservations() (model.Observations, error) {
	obss := make(model.Observations, 0, len(c.Observations))
	for _, oc := range c.Observations {
		obs, err := oc.Build()
		if err != nil {
			return nil, err
		}
		obss = append(obss, obs)
	}
	return obss, nil
}
