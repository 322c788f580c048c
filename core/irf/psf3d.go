package irf

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/core/units"
)

// PSF3D is a table-backed point-spread function parameterised by field-of-view
// offset. Planes holds one (energy x rad) density table per offset node. It
// implements RadialTablePSF: its radial binning is intrinsic and preferred
// over caller-supplied grids.
type PSF3D struct {
	Energy []units.Energy
	Rad    []units.Angle
	Offset []units.Angle
	Planes []*mat.Dense
}

// NewPSF3D validates the axes and planes and wraps them in a PSF3D.
func NewPSF3D(energy []units.Energy, rad, offset []units.Angle, planes []*mat.Dense) (*PSF3D, error) {
	if len(offset) == 0 {
		return nil, fmt.Errorf("psf3d needs at least one offset node")
	}
	if len(planes) != len(offset) {
		return nil, fmt.Errorf("psf3d has %d planes for %d offset nodes", len(planes), len(offset))
	}
	for i := 1; i < len(offset); i++ {
		if offset[i] <= offset[i-1] {
			return nil, fmt.Errorf("offset axis not strictly ascending at index %d", i)
		}
	}
	for i, plane := range planes {
		if _, err := NewEnergyDependentTablePSF(energy, rad, nil, plane); err != nil {
			return nil, fmt.Errorf("offset plane %d: %w", i, err)
		}
	}
	return &PSF3D{Energy: energy, Rad: rad, Offset: offset, Planes: planes}, nil
}

// NativeRadAxis returns the intrinsic radial binning.
func (p *PSF3D) NativeRadAxis() []units.Angle { return p.Rad }

// TablePSF evaluates the PSF at the given offset by interpolating linearly
// between the two bracketing offset planes.
func (p *PSF3D) TablePSF(offset units.Angle) (*EnergyDependentTablePSF, error) {
	plane, err := p.planeAt(offset)
	if err != nil {
		return nil, err
	}
	return NewEnergyDependentTablePSF(p.Energy, p.Rad, nil, plane)
}

// TablePSFAt evaluates the PSF at the given offset and re-samples the radial
// axis onto rad.
func (p *PSF3D) TablePSFAt(offset units.Angle, rad []units.Angle) (*EnergyDependentTablePSF, error) {
	plane, err := p.planeAt(offset)
	if err != nil {
		return nil, err
	}
	for _, r := range rad {
		if r < p.Rad[0] || r > p.Rad[len(p.Rad)-1] {
			return nil, fmt.Errorf("rad %v outside psf table range [%v, %v]", r, p.Rad[0], p.Rad[len(p.Rad)-1])
		}
	}
	xs := make([]float64, len(p.Rad))
	for i, r := range p.Rad {
		xs[i] = r.Rad()
	}
	out := mat.NewDense(len(p.Energy), len(rad), nil)
	row := make([]float64, len(p.Rad))
	for i := range p.Energy {
		mat.Row(row, i, plane)
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, row); err != nil {
			return nil, fmt.Errorf("fit psf radial interpolation: %w", err)
		}
		for j, r := range rad {
			out.Set(i, j, pl.Predict(r.Rad()))
		}
	}
	return NewEnergyDependentTablePSF(p.Energy, rad, nil, out)
}

func (p *PSF3D) planeAt(offset units.Angle) (*mat.Dense, error) {
	last := len(p.Offset) - 1
	if offset < p.Offset[0] || offset > p.Offset[last] {
		return nil, fmt.Errorf("offset %v outside psf table range [%v, %v]", offset, p.Offset[0], p.Offset[last])
	}
	if len(p.Offset) == 1 {
		return p.Planes[0], nil
	}
	i := 1
	for i < last && offset > p.Offset[i] {
		i++
	}
	f := (offset.Rad() - p.Offset[i-1].Rad()) / (p.Offset[i].Rad() - p.Offset[i-1].Rad())
	plane := mat.NewDense(len(p.Energy), len(p.Rad), nil)
	plane.Scale(1-f, p.Planes[i-1])
	var hi mat.Dense
	hi.Scale(f, p.Planes[i])
	plane.Add(plane, &hi)
	return plane, nil
}
