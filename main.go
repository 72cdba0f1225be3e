package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitcoach/internal/auth"
	"fitcoach/internal/store"
	"fitcoach/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "fitcoach",
	Short: "Adaptive training plans built around your energy systems",
	Long: `fitcoach turns your goal, sport and experience into a coaching persona,
an energy-system profile and a periodized season plan, then keeps the
plan honest against the sessions you actually do.

Run without a subcommand to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, errConfigCreated) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	// Sync is optional in the TUI; without credentials the screen says so.
	syncSvc, err := a.syncService(cmd.Context())
	switch {
	case errors.Is(err, store.ErrNoAuth), errors.Is(err, errStravaNotConfigured):
		syncSvc = nil
	case err != nil:
		return err
	}

	app := tui.NewApp(a.coach, syncSvc, a.inputs, a.cfg.Profile.Equipment)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect your Strava account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.cfg.ValidateStrava(); err != nil {
			return err
		}
		res, err := auth.Login(cmd.Context(), auth.NewOAuthConfig(a.cfg.Strava), a.store, cmd.OutOrStdout(), a.logger)
		if err != nil {
			return fmt.Errorf("authentication: %w", err)
		}
		a.logger.Debug("login complete", zap.Int64("athlete_id", res.AthleteID))
		fmt.Fprintf(cmd.OutOrStdout(), "\nConnected Strava athlete %d. Run 'fitcoach sync' to import activities.\n", res.AthleteID)
		return nil
	},
}
