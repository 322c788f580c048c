package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var psfCmd = &cobra.Command{
	Use:   "psf",
	Short: "Compute the exposure-weighted mean PSF at the target position",
	RunE:  runPSF,
}

func init() {
	rootCmd.AddCommand(psfCmd)
}

func runPSF(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cfg, err := newService()
	if err != nil {
		return err
	}
	svc.Start(ctx)

	w, closeOut, err := outputWriter(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	return svc.RunPSF(w)
}
