package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var edispCmd = &cobra.Command{
	Use:   "edisp",
	Short: "Compute the stacked energy dispersion at the target position",
	RunE:  runEdisp,
}

func init() {
	rootCmd.AddCommand(edispCmd)
}

func runEdisp(cmd *cobra.Command, args []string) error {
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
	return svc.RunEdisp(w)
}
