// Package app wires configuration, logging and metrics around the reduction
// functions for the CLI.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/sreekanth370/gammapy/config"
	"github.com/sreekanth370/gammapy/core/irf"
	coremetrics "github.com/sreekanth370/gammapy/core/metrics"
	"github.com/sreekanth370/gammapy/core/reduce"
	"github.com/sreekanth370/gammapy/core/units"
	"github.com/sreekanth370/gammapy/infra/logger"
	"github.com/sreekanth370/gammapy/infra/metrics"
)

// Service runs configured reductions and reports results.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		s, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
	}
	return &Service{cfg: cfg, log: logger.New("service"), sink: sink}, nil
}

// Start launches the metrics server when enabled. It returns immediately; the
// server runs until the context is canceled.
func (s *Service) Start(ctx context.Context) {
	if !s.cfg.Metrics.PrometheusEnabled {
		return
	}
	addr := ":" + s.cfg.Metrics.PrometheusPort
	go func() {
		if err := metrics.StartPromServer(ctx, addr, s.log); err != nil {
			s.log.Errorf("metrics server: %v", err)
		}
	}()
}

type psfResult struct {
	EnergyTeV   []float64   `json:"energy_tev"`
	RadDeg      []float64   `json:"rad_deg"`
	ExposureM2S []float64   `json:"exposure_m2s"`
	PSFValue    [][]float64 `json:"psf_value"`
}

// RunPSF computes the exposure-weighted mean PSF at the configured target and
// writes it to w as JSON.
func (s *Service) RunPSF(w io.Writer) error {
	obss, err := s.cfg.BuildObservations()
	if err != nil {
		return err
	}
	energy, err := s.cfg.Energy.Grid()
	if err != nil {
		return err
	}
	rad, err := s.cfg.Rad.Grid()
	if err != nil {
		return err
	}

	start := time.Now()
	psf, err := reduce.MakeMeanPSF(obss, s.cfg.Target.Position(), energy, rad)
	s.record("psf", len(obss), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("mean psf: %w", err)
	}

	s.log.Infof("mean psf over %d observations at %v", len(obss), s.cfg.Target.Position())
	s.logContainment(psf)

	result := psfResult{
		EnergyTeV:   make([]float64, len(psf.Energy)),
		RadDeg:      make([]float64, len(psf.Rad)),
		ExposureM2S: psf.Exposure,
		PSFValue:    denseRows(psf.Value),
	}
	for i, e := range psf.Energy {
		result.EnergyTeV[i] = e.TeV()
	}
	for j, r := range psf.Rad {
		result.RadDeg[j] = r.Deg()
	}
	return writeJSON(w, result)
}

// logContainment reports 68% and 95% containment radii at a reference energy
// inside the table range. Containment failures are loggable, not fatal.
func (s *Service) logContainment(psf *irf.EnergyDependentTablePSF) {
	ref := units.TeV(1)
	for _, frac := range []float64{0.68, 0.95} {
		r, err := psf.ContainmentRadius(ref, frac)
		if err != nil {
			s.log.Warnf("containment radius at %v: %v", ref, err)
			return
		}
		s.log.Infof("%.0f%% containment radius at %v: %.4f deg", 100*frac, ref, r.Deg())
	}
}

type edispResult struct {
	ETrueTeV []float64   `json:"e_true_tev"`
	ERecoTeV []float64   `json:"e_reco_tev"`
	Migra    [][]float64 `json:"migra"`
}

// RunEdisp computes the stacked energy dispersion at the configured target
// and writes it to w as JSON.
func (s *Service) RunEdisp(w io.Writer) error {
	obss, err := s.cfg.BuildObservations()
	if err != nil {
		return err
	}
	eTrue, err := s.cfg.ETrue.Bounds()
	if err != nil {
		return err
	}
	eReco, err := s.cfg.EReco.Bounds()
	if err != nil {
		return err
	}
	if eTrue == nil || eReco == nil {
		return fmt.Errorf("e_true and e_reco grids are required for energy dispersion")
	}

	start := time.Now()
	stacked, err := reduce.MakeMeanEdisp(obss, s.cfg.Target.Position(), eTrue, eReco,
		units.TeV(s.cfg.Thresholds.LowTeV), units.TeV(s.cfg.Thresholds.HighTeV))
	s.record("edisp", len(obss), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("mean energy dispersion: %w", err)
	}

	s.log.Infof("stacked energy dispersion over %d observations at %v", len(obss), s.cfg.Target.Position())
	mid := (len(stacked.ETrue) - 1) / 2
	s.log.Debugw("dispersion summary", map[string]any{
		"bias_mid_bin": stacked.Bias(mid),
		"n_true_bins":  len(stacked.ETrue) - 1,
		"n_reco_bins":  len(stacked.EReco) - 1,
	})

	result := edispResult{
		ETrueTeV: make([]float64, len(stacked.ETrue)),
		ERecoTeV: make([]float64, len(stacked.EReco)),
		Migra:    denseRows(stacked.Migra),
	}
	for i, e := range stacked.ETrue {
		result.ETrueTeV[i] = e.TeV()
	}
	for k, e := range stacked.EReco {
		result.ERecoTeV[k] = e.TeV()
	}
	return writeJSON(w, result)
}

func (s *Service) record(kind string, n int, d time.Duration, err error) {
	ev := coremetrics.ReductionEvent{Kind: kind, Observations: n, Duration: d, Failed: err != nil}
	if rerr := s.sink.RecordReduction(ev); rerr != nil {
		s.log.Warnf("record %s reduction: %v", kind, rerr)
	}
}

func denseRows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return rows
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
