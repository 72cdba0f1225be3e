package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fitcoach/internal/planning"
	"fitcoach/internal/store"
)

var (
	logDate    string
	logNote    string
	logName    string
	logMinutes int
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day the session was done, YYYY-MM-DD (default now)")
	logCmd.Flags().StringVar(&logNote, "note", "", "free-text note")
	logCmd.Flags().StringVar(&logName, "name", "", "session name")
	logCmd.Flags().IntVar(&logMinutes, "minutes", 0, "session length in minutes")
	rootCmd.AddCommand(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log <system>",
	Short: "Record a completed session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	system, err := planning.ParseEnergySystem(args[0])
	if err != nil {
		return err
	}
	if logMinutes < 0 {
		return fmt.Errorf("--minutes must not be negative")
	}

	var performedAt time.Time
	if logDate != "" {
		// Noon local keeps the session on the named day in any zone.
		day, err := time.ParseInLocation("2006-01-02", logDate, time.Local)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
		performedAt = day.Add(12 * time.Hour)
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	sess := &store.Session{
		PerformedAt:     performedAt,
		System:          system,
		Name:            logName,
		DurationSeconds: logMinutes * 60,
		Note:            logNote,
	}
	if err := a.coach.LogSession(cmd.Context(), sess); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session on %s (%s)\n",
		sess.System, sess.PerformedAt.Local().Format("Mon Jan 2"), sess.ID)
	return nil
}
