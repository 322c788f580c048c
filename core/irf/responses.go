package irf

import "github.com/sreekanth370/gammapy/core/units"

// PSFResponse is an observation's point-spread-function response, evaluated at
// the angular offset between the target position and the telescope pointing.
type PSFResponse interface {
	// TablePSF evaluates the response at the given offset on its native
	// energy and radial grids.
	TablePSF(offset units.Angle) (*EnergyDependentTablePSF, error)
	// TablePSFAt evaluates the response at the given offset on the caller's
	// radial grid, keeping the native energy grid.
	TablePSFAt(offset units.Angle, rad []units.Angle) (*EnergyDependentTablePSF, error)
}

// RadialTablePSF tags table-backed PSF responses with an intrinsic radial
// axis. For these the native radial binning is preferred over any caller
// supplied grid.
type RadialTablePSF interface {
	PSFResponse
	NativeRadAxis() []units.Angle
}

// EffectiveAreaResponse is an observation's collection-area response.
type EffectiveAreaResponse interface {
	// Evaluate returns the collection area in m^2 at each energy, for the
	// given offset.
	Evaluate(offset units.Angle, energy []units.Energy) ([]float64, error)
	// AreaTable evaluates the response on the given true-energy bin edges.
	AreaTable(offset units.Angle, eTrue []units.Energy) (*EffectiveAreaTable, error)
}

// EnergyDispersionResponse is an observation's energy-migration response.
type EnergyDispersionResponse interface {
	// Dispersion evaluates the response on the given true and reconstructed
	// energy bin edges, for the given offset.
	Dispersion(offset units.Angle, eTrue, eReco []units.Energy) (*EnergyDispersion, error)
}
