package irf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/core/units"
)

// EnergyDispersion is a migration matrix mapping true energy to reconstructed
// energy. ETrue and EReco hold bin edges; Migra has one row per true-energy
// bin and one column per reconstructed-energy bin, each row being the
// probability of reconstructing an event from that true-energy bin into each
// reconstructed bin.
type EnergyDispersion struct {
	ETrue []units.Energy
	EReco []units.Energy
	Migra *mat.Dense
}

// NewEnergyDispersion validates the binning and wraps the matrix.
func NewEnergyDispersion(eTrue, eReco []units.Energy, migra *mat.Dense) (*EnergyDispersion, error) {
	if len(eTrue) < 2 || len(eReco) < 2 {
		return nil, fmt.Errorf("energy dispersion needs at least 2 edges per axis, got %d true and %d reco", len(eTrue), len(eReco))
	}
	if err := checkAscendingEnergies(eTrue); err != nil {
		return nil, fmt.Errorf("true energy axis: %w", err)
	}
	if err := checkAscendingEnergies(eReco); err != nil {
		return nil, fmt.Errorf("reco energy axis: %w", err)
	}
	r, c := migra.Dims()
	if r != len(eTrue)-1 || c != len(eReco)-1 {
		return nil, fmt.Errorf("migration matrix shape %dx%d does not match %dx%d bins", r, c, len(eTrue)-1, len(eReco)-1)
	}
	return &EnergyDispersion{ETrue: eTrue, EReco: eReco, Migra: migra}, nil
}

// RecoPDF returns the reconstructed-energy distribution for true-energy bin i.
func (d *EnergyDispersion) RecoPDF(i int) []float64 {
	return mat.Row(nil, i, d.Migra)
}

// Bias returns the mean reconstructed energy for true-energy bin i divided by
// the bin's geometric center, minus one. Rows with no probability mass report
// zero bias.
func (d *EnergyDispersion) Bias(i int) float64 {
	row := d.RecoPDF(i)
	centers := units.EnergyCenters(d.EReco)
	var mass, mean float64
	for k, p := range row {
		mass += p
		mean += p * centers[k].TeV()
	}
	if mass == 0 {
		return 0
	}
	eTrue := units.EnergyCenters(d.ETrue)[i]
	return mean/mass/eTrue.TeV() - 1
}
