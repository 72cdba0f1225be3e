package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fitcoach/internal/planning"
	"fitcoach/internal/store"
)

var (
	planJSON      bool
	planRecompute bool
	planHistory   int
)

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the full plan bundle as JSON")
	planCmd.Flags().BoolVar(&planRecompute, "recompute", false, "recompute even if the profile has not changed")
	planCmd.Flags().IntVar(&planHistory, "history", 0, "list the last N computed plans instead")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the plan derived from your profile",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if planHistory > 0 {
		records, err := a.coach.History(cmd.Context(), planHistory)
		if err != nil {
			return err
		}
		if planJSON {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		return printHistory(cmd.OutOrStdout(), records)
	}

	var rec *store.BundleRecord
	if planRecompute {
		rec, err = a.coach.Recompute(cmd.Context(), a.inputs)
	} else {
		rec, err = a.coach.Ensure(cmd.Context(), a.inputs)
	}
	if err != nil {
		return err
	}

	if planJSON {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	return printPlan(cmd.OutOrStdout(), rec.Bundle)
}

func printPlan(out io.Writer, b planning.PlanBundle) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	p := b.Plan

	fmt.Fprintf(w, "Level\t%s\n", b.Level)
	fmt.Fprintf(w, "Coach\t%s (%s safety, %s progression)\n", b.Persona.Persona, b.Persona.SafetyPriority, b.Persona.ProgressionRate)
	fmt.Fprintf(w, "\t%s\n", b.Persona.Reasoning)
	fmt.Fprintf(w, "Dominant system\t%s\n", b.Profile.Dominant)
	if b.Profile.Secondary != nil {
		fmt.Fprintf(w, "Secondary system\t%s\n", *b.Profile.Secondary)
	}
	d := b.Profile.Distribution
	fmt.Fprintf(w, "Training split\taerobic %.1f%%  alactic %.1f%%  lactic %.1f%%  recovery %.0f%%\n",
		d.Aerobic, d.Alactic, d.Lactic, d.Recovery)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Season\t%d months\n", p.Macrocycle.DurationMonths)
	for _, blk := range p.Schedule {
		fmt.Fprintf(w, "\t%-14s weeks %d-%d\n", blk.Phase, blk.StartWeek, blk.StartWeek+blk.Weeks-1)
	}
	fmt.Fprintf(w, "Next phase change\t%s (%s)\n", humanize.Time(p.NextPhaseTransition), p.NextPhaseTransition.Format("Mon Jan 2 2006"))
	fmt.Fprintln(w)

	meso := p.CurrentMesocycle
	fmt.Fprintf(w, "Current block\t%s, %d weeks\n", meso.Phase, meso.DurationWeeks)
	fmt.Fprintf(w, "Focus\t%s\n", strings.Join(meso.FocusAreas, ", "))
	micro := p.CurrentMicrocycle
	fmt.Fprintf(w, "Week\t%d training, %d active recovery, %d rest\n",
		micro.CountDays(planning.DayTraining), micro.CountDays(planning.DayActiveRecovery), micro.CountDays(planning.DayRest))
	fmt.Fprintf(w, "\t%s\n", formatPattern(micro.Pattern))
	fmt.Fprintf(w, "Progression\t%s, deload every %d weeks\n", p.Progression.Rate, p.Progression.DeloadFrequency)

	return w.Flush()
}

func printHistory(out io.Writer, records []store.BundleRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No plans computed yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPUTED\tLEVEL\tCOACH\tDOMINANT\tGOAL")
	for _, r := range records {
		b := r.Bundle
		goal := b.Inputs.Goal
		if goal == "" {
			goal = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(r.CreatedAt), b.Level, b.Persona.Persona, b.Profile.Dominant, goal)
	}
	return w.Flush()
}

func formatPattern(days [7]planning.DayType) string {
	names := [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = names[i] + " " + strings.ReplaceAll(string(d), "_", " ")
	}
	return strings.Join(parts, ", ")
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
