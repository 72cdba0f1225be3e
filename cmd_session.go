package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fitcoach/internal/planning"
)

var (
	sessionEquipment []string
	sessionMinutes   int
	sessionJSON      bool
)

func init() {
	sessionCmd.Flags().StringSliceVar(&sessionEquipment, "equipment", nil, "available equipment (defaults to profile.equipment)")
	sessionCmd.Flags().IntVar(&sessionMinutes, "minutes", 0, "session length in minutes")
	sessionCmd.Flags().BoolVar(&sessionJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session [system]",
	Short: "Generate a workout for an energy system",
	Long: `Generate workout parameters for aerobic, alactic, lactic or mixed work.
Without a system, the most under-trained system from recent sessions is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSession,
}

func runSession(cmd *cobra.Command, args []string) error {
	var target *planning.EnergySystem
	if len(args) == 1 {
		sys, err := planning.ParseEnergySystem(args[0])
		if err != nil {
			return err
		}
		target = &sys
	}
	if sessionMinutes < 0 {
		return fmt.Errorf("--minutes must not be negative")
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.coach.Ensure(cmd.Context(), a.inputs); err != nil {
		return err
	}

	equipment := sessionEquipment
	if !cmd.Flags().Changed("equipment") {
		equipment = a.cfg.Profile.Equipment
	}

	var params planning.WorkoutParameters
	if target != nil {
		params, err = a.coach.Session(cmd.Context(), *target, equipment, sessionMinutes)
	} else {
		params, err = a.coach.NextSession(cmd.Context(), equipment, sessionMinutes)
	}
	if err != nil {
		return err
	}

	if sessionJSON {
		return writeJSON(cmd.OutOrStdout(), params)
	}
	return printSession(cmd.OutOrStdout(), params)
}

func printSession(out io.Writer, p planning.WorkoutParameters) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "System\t%s\n", p.PrimarySystem)
	if p.SecondarySystem != nil {
		fmt.Fprintf(w, "Also trains\t%s\n", *p.SecondarySystem)
	}
	if p.DurationMinutes > 0 {
		fmt.Fprintf(w, "Duration\t%d min\n", p.DurationMinutes)
	}
	fmt.Fprintf(w, "Work\t%s\n", p.WorkDuration)
	fmt.Fprintf(w, "Rest\t%s\n", p.RestDuration)
	fmt.Fprintf(w, "Intensity\t%s\n", p.IntensityTarget)
	fmt.Fprintf(w, "RPE\t%d-%d\n", p.RPE.Min, p.RPE.Max)
	fmt.Fprintf(w, "Exercises\t%s\n", strings.ReplaceAll(strings.Join(p.ExerciseSelection, ", "), "_", " "))
	fmt.Fprintf(w, "Adaptations\t%s\n", strings.Join(p.AdaptationsTargeted, ", "))
	fmt.Fprintf(w, "Notes\t%s\n", p.ProgressionNotes)
	return w.Flush()
}
