package irf

import (
	"fmt"

	"github.com/sreekanth370/gammapy/core/units"
)

// EffectiveAreaTable is a detector collection area binned in true energy.
// Energy holds the bin edges and Area the collection area in m^2 per bin, so
// len(Area) == len(Energy)-1.
type EffectiveAreaTable struct {
	Energy []units.Energy
	Area   []float64
}

// NewEffectiveAreaTable validates the binning and wraps it in a table.
func NewEffectiveAreaTable(energy []units.Energy, area []float64) (*EffectiveAreaTable, error) {
	if len(energy) < 2 {
		return nil, fmt.Errorf("effective area table needs at least 2 energy edges, got %d", len(energy))
	}
	if err := checkAscendingEnergies(energy); err != nil {
		return nil, err
	}
	if len(area) != len(energy)-1 {
		return nil, fmt.Errorf("area length %d does not match %d energy bins", len(area), len(energy)-1)
	}
	return &EffectiveAreaTable{Energy: energy, Area: area}, nil
}

// NBins returns the number of true-energy bins.
func (t *EffectiveAreaTable) NBins() int { return len(t.Area) }
