package model

import (
	"fmt"
	"time"

	"github.com/sreekanth370/gammapy/core/coords"
	"github.com/sreekanth370/gammapy/core/irf"
)

// Observation is one telescope run with its pointing direction, instrument
// responses and dead-time-corrected duration. The reduction functions treat
// observations as read-only.
type Observation struct {
	ID       int64
	Pointing coords.SkyCoord
	PSF      irf.PSFResponse
	Aeff     irf.EffectiveAreaResponse
	Edisp    irf.EnergyDispersionResponse
	Livetime time.Duration
}

// Validate checks that the observation carries the responses the reduction
// functions need and a positive live time.
func (o Observation) Validate() error {
	if o.PSF == nil {
		return fmt.Errorf("observation %d has no psf response", o.ID)
	}
	if o.Aeff == nil {
		return fmt.Errorf("observation %d has no effective area response", o.ID)
	}
	if o.Edisp == nil {
		return fmt.Errorf("observation %d has no energy dispersion response", o.ID)
	}
	if o.Livetime <= 0 {
		return fmt.Errorf("observation %d has non-positive live time %v", o.ID, o.Livetime)
	}
	return nil
}

// Observations is an ordered list of observations.
type Observations []Observation

// TotalLivetime sums the live time over all observations.
func (obs Observations) TotalLivetime() time.Duration {
	var total time.Duration
	for _, o := range obs {
		total += o.Livetime
	}
	return total
}
