package irf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sreekanth370/gammapy/core/units"
)

// MultiGaussPSF is an analytic point-spread function built from a sum of
// two-dimensional Gaussians. Widths scale with energy as E^-EnergyIndex and
// broaden linearly with field-of-view offset. It implements PSFResponse but
// not RadialTablePSF: it has no intrinsic radial binning, so caller grids are
// honoured.
type MultiGaussPSF struct {
	Sigmas      []units.Angle // widths at 1 TeV on-axis
	Weights     []float64     // relative weights, normalised on evaluation
	EnergyIndex float64
	OffsetScale float64 // fractional width increase per degree of offset

	// grids reported when the caller does not supply any
	NativeEnergy []units.Energy
	NativeRad    []units.Angle
}

// NewMultiGaussPSF validates the component list and native grids.
func NewMultiGaussPSF(sigmas []units.Angle, weights []float64, energyIndex, offsetScale float64, nativeEnergy []units.Energy, nativeRad []units.Angle) (*MultiGaussPSF, error) {
	if len(sigmas) == 0 || len(sigmas) != len(weights) {
		return nil, fmt.Errorf("psf needs matching sigma and weight lists, got %d and %d", len(sigmas), len(weights))
	}
	var wsum float64
	for i, s := range sigmas {
		if s <= 0 {
			return nil, fmt.Errorf("psf sigma %d is not positive: %v", i, s)
		}
		if weights[i] < 0 {
			return nil, fmt.Errorf("psf weight %d is negative: %v", i, weights[i])
		}
		wsum += weights[i]
	}
	if wsum == 0 {
		return nil, fmt.Errorf("psf weights sum to zero")
	}
	if len(nativeEnergy) == 0 || len(nativeRad) == 0 {
		return nil, fmt.Errorf("psf needs non-empty native grids")
	}
	return &MultiGaussPSF{
		Sigmas: sigmas, Weights: weights,
		EnergyIndex: energyIndex, OffsetScale: offsetScale,
		NativeEnergy: nativeEnergy, NativeRad: nativeRad,
	}, nil
}

// Density returns the PSF probability density in sr^-1 at the given energy,
// offset and radial distance.
func (p *MultiGaussPSF) Density(e units.Energy, offset units.Angle, r units.Angle) float64 {
	scale := math.Pow(e.TeV(), -p.EnergyIndex) * (1 + p.OffsetScale*offset.Deg())
	var wsum, val float64
	for i, s := range p.Sigmas {
		wsum += p.Weights[i]
		sigma := s.Rad() * scale
		val += p.Weights[i] / (2 * math.Pi * sigma * sigma) * math.Exp(-0.5*r.Rad()*r.Rad()/(sigma*sigma))
	}
	return val / wsum
}

// TablePSF evaluates the PSF at the given offset on the native grids.
func (p *MultiGaussPSF) TablePSF(offset units.Angle) (*EnergyDependentTablePSF, error) {
	return p.TablePSFAt(offset, p.NativeRad)
}

// TablePSFAt evaluates the PSF at the given offset on the caller's radial
// grid.
func (p *MultiGaussPSF) TablePSFAt(offset units.Angle, rad []units.Angle) (*EnergyDependentTablePSF, error) {
	value := mat.NewDense(len(p.NativeEnergy), len(rad), nil)
	for i, e := range p.NativeEnergy {
		for j, r := range rad {
			value.Set(i, j, p.Density(e, offset, r))
		}
	}
	return NewEnergyDependentTablePSF(p.NativeEnergy, rad, nil, value)
}

// EffectiveArea2D is an analytic collection area with a smooth low-energy
// turn-on and a Gaussian falloff across the field of view.
type EffectiveArea2D struct {
	AreaMax     float64      // on-axis plateau in m^2
	EThresh     units.Energy // turn-on energy
	FieldOfView units.Angle  // offset falloff width
}

// Evaluate returns the collection area in m^2 at each energy for the given
// offset.
func (a *EffectiveArea2D) Evaluate(offset units.Angle, energy []units.Energy) ([]float64, error) {
	if a.EThresh <= 0 || a.FieldOfView <= 0 {
		return nil, fmt.Errorf("effective area model needs positive EThresh and FieldOfView")
	}
	falloff := math.Exp(-0.5 * math.Pow(offset.Rad()/a.FieldOfView.Rad(), 2))
	out := make([]float64, len(energy))
	for i, e := range energy {
		if e <= 0 {
			return nil, fmt.Errorf("energy node %d is not positive: %v", i, e)
		}
		out[i] = a.AreaMax * math.Exp(-a.EThresh.TeV()/e.TeV()) * falloff
	}
	return out, nil
}

// AreaTable evaluates the response at the geometric centers of the given
// true-energy bins.
func (a *EffectiveArea2D) AreaTable(offset units.Angle, eTrue []units.Energy) (*EffectiveAreaTable, error) {
	centers := units.EnergyCenters(eTrue)
	if centers == nil {
		return nil, fmt.Errorf("effective area table needs at least 2 energy edges, got %d", len(eTrue))
	}
	area, err := a.Evaluate(offset, centers)
	if err != nil {
		return nil, err
	}
	return NewEffectiveAreaTable(eTrue, area)
}

// GaussianEnergyDispersion is an analytic migration model: log10 of the
// reconstructed energy is normally distributed around the biased log10 true
// energy, with a resolution that degrades linearly with offset.
type GaussianEnergyDispersion struct {
	Sigma       float64 // log10 migration width on-axis
	Bias        float64 // log10 migration bias
	OffsetScale float64 // fractional width increase per degree of offset
}

// Dispersion builds the migration matrix on the given bin edges for the given
// offset. Each matrix entry is the probability of reconstructing an event from
// a true-energy bin into a reconstructed-energy bin.
func (g *GaussianEnergyDispersion) Dispersion(offset units.Angle, eTrue, eReco []units.Energy) (*EnergyDispersion, error) {
	if g.Sigma <= 0 {
		return nil, fmt.Errorf("energy dispersion model needs a positive Sigma")
	}
	trueCenters := units.EnergyCenters(eTrue)
	if trueCenters == nil || len(eReco) < 2 {
		return nil, fmt.Errorf("energy dispersion needs at least 2 edges per axis, got %d true and %d reco", len(eTrue), len(eReco))
	}
	sigma := g.Sigma * (1 + g.OffsetScale*offset.Deg())
	migra := mat.NewDense(len(trueCenters), len(eReco)-1, nil)
	for j, et := range trueCenters {
		dist := distuv.Normal{Mu: math.Log10(et.TeV()) + g.Bias, Sigma: sigma}
		for k := 0; k < len(eReco)-1; k++ {
			lo := math.Log10(eReco[k].TeV())
			hi := math.Log10(eReco[k+1].TeV())
			migra.Set(j, k, dist.CDF(hi)-dist.CDF(lo))
		}
	}
	return NewEnergyDispersion(eTrue, eReco, migra)
}
