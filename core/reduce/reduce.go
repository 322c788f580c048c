// Package reduce builds exposure-weighted instrument-response aggregates for
// a target sky position from one or more observations.
package reduce

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/core/coords"
	"github.com/sreekanth370/gammapy/core/irf"
	"github.com/sreekanth370/gammapy/core/model"
	"github.com/sreekanth370/gammapy/core/units"
)

// ErrNoObservations is returned when an aggregation is requested over an
// empty observation list.
var ErrNoObservations = errors.New("observation list is empty")

// Reconstructed-energy thresholds applied when the caller passes zero values
// to MakeEdispInputs or MakeMeanEdisp.
const (
	DefaultLowRecoThreshold  = units.Energy(0.002)
	DefaultHighRecoThreshold = units.Energy(150)
)

// MakePSF builds the energy-dependent PSF of a single observation at the
// given sky position. A nil energy or rad grid defaults to the observation's
// native PSF grid at the computed offset. For table-backed PSFs
// (irf.RadialTablePSF) the native radial binning is always used and a caller
// rad grid is ignored. The exposure per energy node is the collection area at
// the offset times the observation's live time.
func MakePSF(obs model.Observation, position coords.SkyCoord, energy []units.Energy, rad []units.Angle) (*irf.EnergyDependentTablePSF, error) {
	offset := position.Separation(obs.Pointing)

	native, err := obs.PSF.TablePSF(offset)
	if err != nil {
		return nil, err
	}
	if energy == nil {
		energy = native.Energy
	}
	if rad == nil {
		rad = native.Rad
	}

	var value *mat.Dense
	if _, ok := obs.PSF.(irf.RadialTablePSF); ok {
		value, err = native.EvaluateEnergies(energy)
		rad = native.Rad
	} else {
		var table *irf.EnergyDependentTablePSF
		table, err = obs.PSF.TablePSFAt(offset, rad)
		if err != nil {
			return nil, err
		}
		value, err = table.EvaluateEnergies(energy)
	}
	if err != nil {
		return nil, err
	}

	area, err := obs.Aeff.Evaluate(offset, energy)
	if err != nil {
		return nil, err
	}
	exposure := make([]float64, len(energy))
	for i, a := range area {
		exposure[i] = a * obs.Livetime.Seconds()
	}

	return irf.NewEnergyDependentTablePSF(energy, rad, exposure, value)
}

// MakeMeanPSF builds the exposure-weighted mean PSF of a list of observations
// at the given sky position. Grids left nil are resolved from the first
// observation's native PSF grids at its offset, then held fixed for the
// remaining observations. Per energy node the result satisfies
// value = sum(value_i * exposure_i) / sum(exposure_i); nodes with zero total
// exposure come out non-finite and are left for the caller to deal with.
func MakeMeanPSF(obss model.Observations, position coords.SkyCoord, energy []units.Energy, rad []units.Angle) (*irf.EnergyDependentTablePSF, error) {
	if len(obss) == 0 {
		return nil, ErrNoObservations
	}

	first, err := MakePSF(obss[0], position, energy, rad)
	if err != nil {
		return nil, fmt.Errorf("observation %d: %w", obss[0].ID, err)
	}
	// The first PSF fixes the grids: it resolves nil defaults and, for
	// table-backed PSFs, the native radial binning that overrides any caller
	// grid.
	energy = first.Energy
	rad = first.Rad

	exposure := append([]float64(nil), first.Exposure...)
	weighted := mat.NewDense(len(energy), len(rad), nil)
	addWeighted(weighted, first)

	for _, o := range obss[1:] {
		psf, err := MakePSF(o, position, energy, rad)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", o.ID, err)
		}
		if len(psf.Rad) != len(rad) {
			return nil, fmt.Errorf("observation %d: psf has %d radial nodes, expected %d", o.ID, len(psf.Rad), len(rad))
		}
		floats.Add(exposure, psf.Exposure)
		addWeighted(weighted, psf)
	}

	for i := range exposure {
		floats.Scale(1/exposure[i], weighted.RawRowView(i))
	}
	return irf.NewEnergyDependentTablePSF(energy, rad, exposure, weighted)
}

// addWeighted accumulates psf.Value scaled per energy node by its exposure.
// The exposure varies with energy but not with radius, so each row is scaled
// by a single weight.
func addWeighted(dst *mat.Dense, psf *irf.EnergyDependentTablePSF) {
	for i, w := range psf.Exposure {
		floats.AddScaled(dst.RawRowView(i), w, psf.Value.RawRowView(i))
	}
}

// MakeEdispInputs assembles the per-observation inputs for energy-dispersion
// stacking: for each observation, its effective area and migration matrix
// evaluated at that observation's own offset from the target, its live time
// and the reconstructed-energy thresholds. Zero threshold values default to
// 0.002 TeV and 150 TeV; the thresholds are applied uniformly to every
// observation.
func MakeEdispInputs(obss model.Observations, position coords.SkyCoord, eTrue, eReco []units.Energy, lowThreshold, highThreshold units.Energy) (*irf.IRFStacker, error) {
	if len(obss) == 0 {
		return nil, ErrNoObservations
	}
	if lowThreshold == 0 {
		lowThreshold = DefaultLowRecoThreshold
	}
	if highThreshold == 0 {
		highThreshold = DefaultHighRecoThreshold
	}

	stacker := &irf.IRFStacker{}
	for _, o := range obss {
		offset := position.Separation(o.Pointing)
		aeff, err := o.Aeff.AreaTable(offset, eTrue)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", o.ID, err)
		}
		edisp, err := o.Edisp.Dispersion(offset, eTrue, eReco)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", o.ID, err)
		}
		stacker.Aeffs = append(stacker.Aeffs, aeff)
		stacker.Edisps = append(stacker.Edisps, edisp)
		stacker.Livetimes = append(stacker.Livetimes, o.Livetime)
		stacker.LowThresholds = append(stacker.LowThresholds, lowThreshold)
		stacker.HighThresholds = append(stacker.HighThresholds, highThreshold)
	}
	return stacker, nil
}

// MakeMeanEdisp assembles the stacking inputs and returns the stacked energy
// dispersion for the observation list at the given sky position.
func MakeMeanEdisp(obss model.Observations, position coords.SkyCoord, eTrue, eReco []units.Energy, lowThreshold, highThreshold units.Energy) (*irf.EnergyDispersion, error) {
	stacker, err := MakeEdispInputs(obss, position, eTrue, eReco, lowThreshold, highThreshold)
	if err != nil {
		return nil, err
	}
	if err := stacker.StackEdisp(); err != nil {
		return nil, err
	}
	return stacker.StackedEdisp, nil
}
