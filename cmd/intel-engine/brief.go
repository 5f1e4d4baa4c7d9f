// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Run a search and render it as a three-item daily brief",
	Long: `Brief runs the same search pipeline as 'search' and condenses the raw
response into at most three numbered headlines plus a fixed action line.`,
	RunE: runBrief,
}

func runBrief(cmd *cobra.Command, args []string) error {
	personaName, _ := cmd.Flags().GetString("persona")
	focusCSV, _ := cmd.Flags().GetString("focus")
	timeRange, _ := cmd.Flags().GetString("time-range")
	timeout, _ := cmd.Flags().GetInt("timeout")
	correlationID, _ := cmd.Flags().GetString("correlation-id")
	offline, _ := cmd.Flags().GetBool("offline")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, cleanup, err := buildEngine(cmd, offline)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), searchDeadline(timeout))
	defer cancel()

	result, err := eng.DailyBrief(ctx, personaName, splitCSV(focusCSV), timeRange, correlationID, timeout)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Content)
	printSummary(result.Metadata)
	return nil
}

func init() {
	briefCmd.Flags().String("persona", "", "persona profile name (see 'personas list')")
	briefCmd.Flags().String("focus", "", "focus areas (comma-separated; persona defaults when empty)")
	briefCmd.Flags().String("time-range", "", "time range: 7d, 30d, 90d, 6m, 1y, or week/month/quarter/year")
	briefCmd.Flags().Int("timeout", 0, "streaming timeout in seconds (10-120, default 60)")
	briefCmd.Flags().String("correlation-id", "", "request correlation id (generated when empty)")
	briefCmd.Flags().Bool("offline", false, "answer from the local knowledge base instead of the agent service")
	briefCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(briefCmd)
}
