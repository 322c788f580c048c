package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sreekanth370/gammapy/app"
	"github.com/sreekanth370/gammapy/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "gammapy",
	Short: "Instrument-response reduction for gamma-ray observations",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newService() (*app.Service, *config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

// outputWriter opens the configured output file, or falls back to stdout.
// The returned closer is a no-op for stdout.
func outputWriter(cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.Output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, f.Close, nil
}
