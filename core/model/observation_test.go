package model

import (
	"testing"
	"time"

	"github.com/sreekanth370/gammapy/core/irf"
	"github.com/sreekanth370/gammapy/core/units"
)

func validObservation(t *testing.T) Observation {
	t.Helper()
	energy, err := units.LogEnergyGrid(units.TeV(0.1), units.TeV(10), 5)
	if err != nil {
		t.Fatalf("energy grid: %v", err)
	}
	rad, err := units.LinearAngleGrid(0, units.Deg(0.5), 10)
	if err != nil {
		t.Fatalf("rad grid: %v", err)
	}
	psf, err := irf.NewMultiGaussPSF([]units.Angle{units.Deg(0.1)}, []float64{1}, 0, 0, energy, rad)
	if err != nil {
		t.Fatalf("psf: %v", err)
	}
	return Observation{
		ID:       23523,
		PSF:      psf,
		Aeff:     &irf.EffectiveArea2D{AreaMax: 1e5, EThresh: units.TeV(0.1), FieldOfView: units.Deg(2)},
		Edisp:    &irf.GaussianEnergyDispersion{Sigma: 0.1},
		Livetime: 28 * time.Minute,
	}
}

func TestObservationValidate(t *testing.T) {
	obs := validObservation(t)
	if err := obs.Validate(); err != nil {
		t.Errorf("valid observation rejected: %v", err)
	}

	noPSF := obs
	noPSF.PSF = nil
	if err := noPSF.Validate(); err == nil {
		t.Error("missing psf accepted")
	}
	noAeff := obs
	noAeff.Aeff = nil
	if err := noAeff.Validate(); err == nil {
		t.Error("missing effective area accepted")
	}
	noEdisp := obs
	noEdisp.Edisp = nil
	if err := noEdisp.Validate(); err == nil {
		t.Error("missing energy dispersion accepted")
	}
	dead := obs
	dead.Livetime = 0
	if err := dead.Validate(); err == nil {
		t.Error("zero live time accepted")
	}
}

func TestObservationsTotalLivetime(t *testing.T) {
	obs := validObservation(t)
	list := Observations{obs, obs, obs}
	if got := list.TotalLivetime(); got != 84*time.Minute {
		t.Errorf("total live time = %v, want 84m", got)
	}
	if got := (Observations{}).TotalLivetime(); got != 0 {
		t.Errorf("empty list live time = %v, want 0", got)
	}
}
