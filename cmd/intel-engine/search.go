// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/intel-engine/internal/engine"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a persona-customized intelligence search",
	Long: `Search composes a prompt from the selected persona profile, streams the
agent's response under a deadline, scores it, and prints a formatted
intelligence report. A degraded or failed stream still produces a readable
diagnostic report.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	personaName, _ := cmd.Flags().GetString("persona")
	focusCSV, _ := cmd.Flags().GetString("focus")
	timeRange, _ := cmd.Flags().GetString("time-range")
	timeout, _ := cmd.Flags().GetInt("timeout")
	correlationID, _ := cmd.Flags().GetString("correlation-id")
	offline, _ := cmd.Flags().GetBool("offline")
	progress, _ := cmd.Flags().GetBool("progress")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, cleanup, err := buildEngine(cmd, offline)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), searchDeadline(timeout))
	defer cancel()

	focusAreas := splitCSV(focusCSV)

	if progress {
		return runSearchStream(ctx, eng, personaName, focusAreas, timeRange, correlationID, timeout, jsonOutput)
	}

	outcome, err := eng.Search(ctx, personaName, focusAreas, timeRange, correlationID, timeout)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}

	fmt.Println(outcome.Report.Body)
	printSummary(outcome.Metadata)
	return nil
}

// runSearchStream consumes the progress channel, echoing stage events to
// stderr and printing the final report to stdout.
func runSearchStream(ctx context.Context, eng *engine.Engine, personaName string, focusAreas []string, timeRange, correlationID string, timeout int, jsonOutput bool) error {
	events, err := eng.SearchStream(ctx, personaName, focusAreas, timeRange, correlationID, timeout)
	if err != nil {
		return err
	}

	for ev := range events {
		if ev.Stage != "result" {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Stage, ev.Message)
			continue
		}
		if ev.Outcome == nil {
			return fmt.Errorf("%s", ev.Message)
		}
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(*ev.Outcome)
		}
		fmt.Println(ev.Outcome.Report.Body)
		printSummary(ev.Outcome.Metadata)
	}
	return nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func init() {
	searchCmd.Flags().String("persona", "", "persona profile name (see 'personas list')")
	searchCmd.Flags().String("focus", "", "focus areas (comma-separated; persona defaults when empty)")
	searchCmd.Flags().String("time-range", "", "time range: 7d, 30d, 90d, 6m, 1y, or week/month/quarter/year")
	searchCmd.Flags().Int("timeout", 0, "streaming timeout in seconds (10-120, default 60)")
	searchCmd.Flags().String("correlation-id", "", "request correlation id (generated when empty)")
	searchCmd.Flags().Bool("offline", false, "answer from the local knowledge base instead of the agent service")
	searchCmd.Flags().Bool("progress", false, "stream progress events to stderr")
	searchCmd.Flags().Bool("json", false, "output the full outcome as JSON")

	rootCmd.AddCommand(searchCmd)
}
