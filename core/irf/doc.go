// Package irf holds instrument-response tables for gamma-ray observations:
// energy-dependent point-spread functions, effective areas and energy
// dispersion matrices, plus the stacker that combines responses from several
// observations into a single exposure-weighted one.
package irf
