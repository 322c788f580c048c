package irf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/core/units"
)

// EnergyDependentTablePSF is a point-spread function sampled on an energy grid
// and a radial-offset grid. Value holds the PSF probability density in sr^-1,
// one row per energy node and one column per radial node. Exposure carries the
// effective exposure (m^2 s) per energy node accumulated while building the
// table. Tables are immutable once built.
type EnergyDependentTablePSF struct {
	Energy   []units.Energy
	Rad      []units.Angle
	Exposure []float64
	Value    *mat.Dense
}

// NewEnergyDependentTablePSF validates the grids and wraps them in a table.
// A nil exposure is replaced by zeros. Energy and rad must be strictly
// ascending and the value matrix must be len(energy) x len(rad).
func NewEnergyDependentTablePSF(energy []units.Energy, rad []units.Angle, exposure []float64, value *mat.Dense) (*EnergyDependentTablePSF, error) {
	if len(energy) == 0 || len(rad) == 0 {
		return nil, fmt.Errorf("table psf needs non-empty energy and rad grids")
	}
	if err := checkAscendingEnergies(energy); err != nil {
		return nil, err
	}
	for i := 1; i < len(rad); i++ {
		if rad[i] <= rad[i-1] {
			return nil, fmt.Errorf("rad grid not strictly ascending at index %d", i)
		}
	}
	r, c := value.Dims()
	if r != len(energy) || c != len(rad) {
		return nil, fmt.Errorf("psf value shape %dx%d does not match grids %dx%d", r, c, len(energy), len(rad))
	}
	if exposure == nil {
		exposure = make([]float64, len(energy))
	} else if len(exposure) != len(energy) {
		return nil, fmt.Errorf("exposure length %d does not match energy grid length %d", len(exposure), len(energy))
	}
	return &EnergyDependentTablePSF{Energy: energy, Rad: rad, Exposure: exposure, Value: value}, nil
}

func checkAscendingEnergies(energy []units.Energy) error {
	for i, e := range energy {
		if e <= 0 {
			return fmt.Errorf("energy grid node %d is not positive: %v", i, e)
		}
		if i > 0 && e <= energy[i-1] {
			return fmt.Errorf("energy grid not strictly ascending at index %d", i)
		}
	}
	return nil
}

// EvaluateEnergies interpolates the table rows onto the requested energies,
// linearly in log10(energy). Energies outside the table range are an error.
func (p *EnergyDependentTablePSF) EvaluateEnergies(energies []units.Energy) (*mat.Dense, error) {
	logx := make([]float64, len(p.Energy))
	for i, e := range p.Energy {
		logx[i] = math.Log10(e.TeV())
	}
	for _, e := range energies {
		if e < p.Energy[0] || e > p.Energy[len(p.Energy)-1] {
			return nil, fmt.Errorf("energy %v outside psf table range [%v, %v]", e, p.Energy[0], p.Energy[len(p.Energy)-1])
		}
	}

	out := mat.NewDense(len(energies), len(p.Rad), nil)
	col := make([]float64, len(p.Energy))
	for j := 0; j < len(p.Rad); j++ {
		mat.Col(col, j, p.Value)
		var pl interp.PiecewiseLinear
		if err := pl.Fit(logx, col); err != nil {
			return nil, fmt.Errorf("fit psf energy interpolation: %w", err)
		}
		for i, e := range energies {
			out.Set(i, j, pl.Predict(math.Log10(e.TeV())))
		}
	}
	return out, nil
}

// ProfileAt returns the radial PSF profile at a single energy.
func (p *EnergyDependentTablePSF) ProfileAt(e units.Energy) ([]float64, error) {
	m, err := p.EvaluateEnergies([]units.Energy{e})
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, 0, m), nil
}

// cumulative returns the running integral of 2*pi*r*psf(r) over the rad grid,
// one entry per radial node. The small-angle approximation is used for the
// solid-angle element.
func cumulative(rad []units.Angle, profile []float64) []float64 {
	cum := make([]float64, len(rad))
	for i := 1; i < len(rad); i++ {
		r0, r1 := rad[i-1].Rad(), rad[i].Rad()
		y0 := 2 * math.Pi * r0 * profile[i-1]
		y1 := 2 * math.Pi * r1 * profile[i]
		cum[i] = cum[i-1] + 0.5*(y0+y1)*(r1-r0)
	}
	return cum
}

// Integral returns the PSF probability integrated out to rMax at energy e.
func (p *EnergyDependentTablePSF) Integral(e units.Energy, rMax units.Angle) (float64, error) {
	profile, err := p.ProfileAt(e)
	if err != nil {
		return 0, err
	}
	cum := cumulative(p.Rad, profile)
	if rMax <= p.Rad[0] {
		return 0, nil
	}
	last := len(p.Rad) - 1
	if rMax >= p.Rad[last] {
		return cum[last], nil
	}
	for i := 1; i <= last; i++ {
		if rMax <= p.Rad[i] {
			f := (rMax.Rad() - p.Rad[i-1].Rad()) / (p.Rad[i].Rad() - p.Rad[i-1].Rad())
			return cum[i-1] + f*(cum[i]-cum[i-1]), nil
		}
	}
	return cum[last], nil
}

// ContainmentRadius returns the radius enclosing the given fraction of the
// PSF probability at energy e, relative to the probability contained in the
// full table.
func (p *EnergyDependentTablePSF) ContainmentRadius(e units.Energy, fraction float64) (units.Angle, error) {
	if fraction <= 0 || fraction >= 1 {
		return 0, fmt.Errorf("containment fraction must be in (0, 1), got %v", fraction)
	}
	profile, err := p.ProfileAt(e)
	if err != nil {
		return 0, err
	}
	cum := cumulative(p.Rad, profile)
	total := cum[len(cum)-1]
	if total <= 0 {
		return 0, fmt.Errorf("psf integrates to %v at %v, cannot invert containment", total, e)
	}
	target := fraction * total
	for i := 1; i < len(cum); i++ {
		if cum[i] >= target {
			if cum[i] == cum[i-1] {
				return p.Rad[i], nil
			}
			f := (target - cum[i-1]) / (cum[i] - cum[i-1])
			return p.Rad[i-1] + units.Angle(f)*(p.Rad[i]-p.Rad[i-1]), nil
		}
	}
	return p.Rad[len(p.Rad)-1], nil
}

// TotalExposure sums the exposure over all energy nodes.
func (p *EnergyDependentTablePSF) TotalExposure() float64 {
	var sum float64
	for _, e := range p.Exposure {
		sum += e
	}
	return sum
}
