package irf

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/core/units"
)

// ErrEmptyStack is returned when a stacker holds no observations.
var ErrEmptyStack = errors.New("no observations to stack")

// ErrMismatchedStack is returned when the per-observation input lists differ
// in length.
var ErrMismatchedStack = errors.New("stacker input lists have mismatched lengths")

// IRFStacker combines instrument responses from several observations into a
// single stacked one. All slices are parallel: entry i describes observation
// i. The reconstructed-energy thresholds mask out the bins where an
// observation's reconstruction is unreliable before its dispersion enters the
// stack.
type IRFStacker struct {
	Aeffs          []*EffectiveAreaTable
	Edisps         []*EnergyDispersion
	Livetimes      []time.Duration
	LowThresholds  []units.Energy
	HighThresholds []units.Energy

	// StackedEdisp holds the result of StackEdisp.
	StackedEdisp *EnergyDispersion
}

// Validate checks that the input lists are non-empty and parallel.
func (s *IRFStacker) Validate() error {
	n := len(s.Aeffs)
	if n == 0 {
		return ErrEmptyStack
	}
	if len(s.Edisps) != n || len(s.Livetimes) != n || len(s.LowThresholds) != n || len(s.HighThresholds) != n {
		return fmt.Errorf("%w: %d aeff, %d edisp, %d livetime, %d low, %d high",
			ErrMismatchedStack, n, len(s.Edisps), len(s.Livetimes), len(s.LowThresholds), len(s.HighThresholds))
	}
	return nil
}

// StackEdisp computes the exposure-weighted stacked energy dispersion. Each
// observation's migration matrix is weighted per true-energy bin by
// area x livetime, with reconstructed bins outside the observation's
// thresholds masked out, then the accumulated matrix is normalised by the
// total weight per true-energy bin. Bins with zero total weight stay zero.
func (s *IRFStacker) StackEdisp() error {
	if err := s.Validate(); err != nil {
		return err
	}
	eTrue := s.Edisps[0].ETrue
	eReco := s.Edisps[0].EReco
	nTrue := len(eTrue) - 1
	nReco := len(eReco) - 1
	recoCenters := units.EnergyCenters(eReco)

	stacked := mat.NewDense(nTrue, nReco, nil)
	weight := make([]float64, nTrue)

	for i := range s.Edisps {
		d := s.Edisps[i]
		if r, c := d.Migra.Dims(); r != nTrue || c != nReco {
			return fmt.Errorf("observation %d: dispersion shape %dx%d does not match %dx%d", i, r, c, nTrue, nReco)
		}
		if s.Aeffs[i].NBins() != nTrue {
			return fmt.Errorf("observation %d: effective area has %d bins, dispersion %d", i, s.Aeffs[i].NBins(), nTrue)
		}
		live := s.Livetimes[i].Seconds()
		lo, hi := s.LowThresholds[i], s.HighThresholds[i]
		for j := 0; j < nTrue; j++ {
			w := s.Aeffs[i].Area[j] * live
			weight[j] += w
			if w == 0 {
				continue
			}
			for k := 0; k < nReco; k++ {
				if recoCenters[k] < lo || recoCenters[k] > hi {
					continue
				}
				stacked.Set(j, k, stacked.At(j, k)+w*d.Migra.At(j, k))
			}
		}
	}

	for j := 0; j < nTrue; j++ {
		if weight[j] > 0 {
			floats.Scale(1/weight[j], stacked.RawRowView(j))
		}
	}

	out, err := NewEnergyDispersion(eTrue, eReco, stacked)
	if err != nil {
		return err
	}
	s.StackedEdisp = out
	return nil
}
