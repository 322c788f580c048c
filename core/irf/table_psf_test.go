package irf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/core/units"
)

func testEnergyGrid(t *testing.T, min, max float64, n int) []units.Energy {
	t.Helper()
	grid, err := units.LogEnergyGrid(units.TeV(min), units.TeV(max), n)
	if err != nil {
		t.Fatalf("energy grid: %v", err)
	}
	return grid
}

func testRadGrid(t *testing.T, maxDeg float64, n int) []units.Angle {
	t.Helper()
	grid, err := units.LinearAngleGrid(0, units.Deg(maxDeg), n)
	if err != nil {
		t.Fatalf("rad grid: %v", err)
	}
	return grid
}

func TestNewEnergyDependentTablePSFValidation(t *testing.T) {
	energy := testEnergyGrid(t, 0.1, 10, 3)
	rad := testRadGrid(t, 0.5, 4)

	if _, err := NewEnergyDependentTablePSF(energy, rad, nil, mat.NewDense(3, 4, nil)); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}
	if _, err := NewEnergyDependentTablePSF(energy, rad, nil, mat.NewDense(4, 3, nil)); err == nil {
		t.Error("shape mismatch accepted")
	}
	if _, err := NewEnergyDependentTablePSF(energy, rad, []float64{1, 2}, mat.NewDense(3, 4, nil)); err == nil {
		t.Error("exposure length mismatch accepted")
	}
	if _, err := NewEnergyDependentTablePSF([]units.Energy{1, 1, 2}, rad, nil, mat.NewDense(3, 4, nil)); err == nil {
		t.Error("non-ascending energy grid accepted")
	}
	if _, err := NewEnergyDependentTablePSF(nil, rad, nil, mat.NewDense(1, 4, nil)); err == nil {
		t.Error("empty energy grid accepted")
	}
}

func TestEvaluateEnergiesExactOnLogLinearData(t *testing.T) {
	// density varying linearly in log10(E) must be reproduced exactly at
	// intermediate energies
	energy := []units.Energy{units.TeV(0.1), units.TeV(1), units.TeV(10)}
	rad := testRadGrid(t, 0.3, 3)
	value := mat.NewDense(3, 3, nil)
	for i, e := range energy {
		for j := range rad {
			value.Set(i, j, 2*math.Log10(e.TeV())+float64(j))
		}
	}
	psf, err := NewEnergyDependentTablePSF(energy, rad, nil, value)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}

	got, err := psf.EvaluateEnergies([]units.Energy{units.TeV(math.Sqrt(0.1))})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for j := range rad {
		want := 2*(-0.5) + float64(j)
		if math.Abs(got.At(0, j)-want) > 1e-12 {
			t.Errorf("col %d: got %v, want %v", j, got.At(0, j), want)
		}
	}
}

func TestEvaluateEnergiesOutOfRange(t *testing.T) {
	energy := testEnergyGrid(t, 0.1, 10, 3)
	rad := testRadGrid(t, 0.3, 3)
	psf, err := NewEnergyDependentTablePSF(energy, rad, nil, mat.NewDense(3, 3, nil))
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	if _, err := psf.EvaluateEnergies([]units.Energy{units.TeV(100)}); err == nil {
		t.Error("out-of-range energy accepted")
	}
	if _, err := psf.EvaluateEnergies([]units.Energy{units.TeV(0.01)}); err == nil {
		t.Error("below-range energy accepted")
	}
}

func TestContainmentRadiusGaussian(t *testing.T) {
	// for a 2-D Gaussian the 39.3% containment radius is one sigma
	sigma := units.Deg(0.1)
	psf, err := NewMultiGaussPSF([]units.Angle{sigma}, []float64{1}, 0, 0,
		testEnergyGrid(t, 0.1, 10, 5), testRadGrid(t, 1.0, 500))
	if err != nil {
		t.Fatalf("build psf: %v", err)
	}
	table, err := psf.TablePSF(0)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	r, err := table.ContainmentRadius(units.TeV(1), 1-math.Exp(-0.5))
	if err != nil {
		t.Fatalf("containment: %v", err)
	}
	if math.Abs(r.Deg()-sigma.Deg()) > 0.01*sigma.Deg() {
		t.Errorf("1-sigma containment radius = %v, want %v", r, sigma)
	}
}

func TestIntegralGaussian(t *testing.T) {
	psf, err := NewMultiGaussPSF([]units.Angle{units.Deg(0.1)}, []float64{1}, 0, 0,
		testEnergyGrid(t, 0.1, 10, 5), testRadGrid(t, 1.0, 500))
	if err != nil {
		t.Fatalf("build psf: %v", err)
	}
	table, err := psf.TablePSF(0)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	total, err := table.Integral(units.TeV(1), units.Deg(1.0))
	if err != nil {
		t.Fatalf("integral: %v", err)
	}
	// the table reaches 10 sigma, essentially all probability
	if math.Abs(total-1) > 1e-3 {
		t.Errorf("psf integral = %v, want ~1", total)
	}

	zero, err := table.Integral(units.TeV(1), 0)
	if err != nil {
		t.Fatalf("integral: %v", err)
	}
	if zero != 0 {
		t.Errorf("integral to r=0 should be 0, got %v", zero)
	}
}

func TestTotalExposure(t *testing.T) {
	energy := testEnergyGrid(t, 0.1, 10, 3)
	rad := testRadGrid(t, 0.3, 3)
	psf, err := NewEnergyDependentTablePSF(energy, rad, []float64{1, 2, 3}, mat.NewDense(3, 3, nil))
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	if got := psf.TotalExposure(); got != 6 {
		t.Errorf("total exposure = %v, want 6", got)
	}
}
