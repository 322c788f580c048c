package units

import (
	"fmt"
	"math"
)

// Energy is a photon energy stored in TeV. The zero value means "unset" for
// optional parameters; physical energies are always positive.
type Energy float64

// TeV returns an Energy of v TeV.
func TeV(v float64) Energy { return Energy(v) }

// GeV returns an Energy of v GeV.
func GeV(v float64) Energy { return Energy(v / 1e3) }

// TeV returns the energy in TeV.
func (e Energy) TeV() float64 { return float64(e) }

// GeV returns the energy in GeV.
func (e Energy) GeV() float64 { return float64(e) * 1e3 }

func (e Energy) String() string {
	return fmt.Sprintf("%g TeV", float64(e))
}

// LogEnergyGrid returns n energies spaced uniformly in log10 between min and
// max, both inclusive. n must be at least 2 and min must be positive and below
// max.
func LogEnergyGrid(min, max Energy, n int) ([]Energy, error) {
	if n < 2 {
		return nil, fmt.Errorf("log energy grid needs at least 2 nodes, got %d", n)
	}
	if min <= 0 || max <= min {
		return nil, fmt.Errorf("invalid energy range [%v, %v]", min, max)
	}
	lo, hi := math.Log10(min.TeV()), math.Log10(max.TeV())
	grid := make([]Energy, n)
	for i := range grid {
		f := float64(i) / float64(n-1)
		grid[i] = Energy(math.Pow(10, lo+f*(hi-lo)))
	}
	// avoid round-off at the endpoints
	grid[0] = min
	grid[n-1] = max
	return grid, nil
}

// LogEnergyBounds returns nBins+1 bin edges spaced uniformly in log10.
func LogEnergyBounds(min, max Energy, nBins int) ([]Energy, error) {
	if nBins < 1 {
		return nil, fmt.Errorf("log energy bounds need at least 1 bin, got %d", nBins)
	}
	return LogEnergyGrid(min, max, nBins+1)
}

// EnergyCenters returns the geometric centers of the bins defined by edges.
func EnergyCenters(edges []Energy) []Energy {
	if len(edges) < 2 {
		return nil
	}
	centers := make([]Energy, len(edges)-1)
	for i := range centers {
		centers[i] = Energy(math.Sqrt(edges[i].TeV() * edges[i+1].TeV()))
	}
	return centers
}
