// Package coords provides the minimal sky-coordinate support the reduction
// functions need: equatorial positions and great-circle separations.
package coords

import (
	"fmt"
	"math"

	"github.com/sreekanth370/gammapy/core/units"
)

// SkyCoord is an equatorial (ICRS) sky position.
type SkyCoord struct {
	RA  units.Angle
	Dec units.Angle
}

// New returns a SkyCoord from right ascension and declination in degrees.
func New(raDeg, decDeg float64) SkyCoord {
	return SkyCoord{RA: units.Deg(raDeg), Dec: units.Deg(decDeg)}
}

// Separation returns the on-sky angular distance to other. The Vincenty
// formula is used so the result stays accurate for both very small and
// near-antipodal separations.
func (c SkyCoord) Separation(other SkyCoord) units.Angle {
	dRA := other.RA.Rad() - c.RA.Rad()
	sinDRA, cosDRA := math.Sincos(dRA)
	sinDec1, cosDec1 := math.Sincos(c.Dec.Rad())
	sinDec2, cosDec2 := math.Sincos(other.Dec.Rad())

	num1 := cosDec2 * sinDRA
	num2 := cosDec1*sinDec2 - sinDec1*cosDec2*cosDRA
	den := sinDec1*sinDec2 + cosDec1*cosDec2*cosDRA

	return units.Rad(math.Atan2(math.Hypot(num1, num2), den))
}

func (c SkyCoord) String() string {
	return fmt.Sprintf("(ra=%.5f deg, dec=%.5f deg)", c.RA.Deg(), c.Dec.Deg())
}
