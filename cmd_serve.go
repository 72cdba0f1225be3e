package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitcoach/internal/api"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to server.addr)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve plans, sessions and progress as JSON",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	// Make sure a plan exists for the configured profile before the first
	// request asks for it.
	if _, err := a.coach.Ensure(cmd.Context(), a.inputs); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	a.logger.Info("starting api", zap.String("addr", addr))
	return api.NewServer(a.coach, a.logger).ListenAndServe(cmd.Context(), addr)
}
