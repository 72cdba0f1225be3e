package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fitcoach/internal/service"
	"fitcoach/internal/store"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import new Strava activities as training sessions",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.syncService(cmd.Context())
	if errors.Is(err, store.ErrNoAuth) {
		return errors.New("strava is not connected; run 'fitcoach login' first")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	progress := make(chan service.SyncProgress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			if p.CurrentActivity != "" {
				fmt.Fprintf(out, "\r%d fetched, %d imported", p.Fetched, p.Imported)
			}
		}
	}()

	result, err := svc.SyncAll(cmd.Context(), progress)
	<-done
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	fmt.Fprintf(out, "%d activities fetched: %d new, %d updated, %d skipped\n",
		result.ActivitiesFetched, result.SessionsCreated, result.SessionsUpdated, result.Skipped)
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  warning: %v\n", e)
	}

	counts, err := a.coach.SessionCounts(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Stored sessions: %d from strava, %d logged by hand\n",
		counts[store.SourceStrava], counts[store.SourceManual])
	return nil
}
