// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var newsletterCmd = &cobra.Command{
	Use:   "newsletter",
	Short: "Run a search and render it as a numbered-digest newsletter",
	Long: `Newsletter runs the same search pipeline as 'search' and renders the raw
response as a numbered Key Updates digest with a fixed Action Items block.`,
	RunE: runNewsletter,
}

func runNewsletter(cmd *cobra.Command, args []string) error {
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

	result, err := eng.Newsletter(ctx, personaName, splitCSV(focusCSV), timeRange, correlationID, timeout)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Content)
	fmt.Fprintf(os.Stderr, "\n%d words, %d characters\n", result.WordCount, result.CharCount)
	printSummary(result.Metadata)
	return nil
}

func init() {
	newsletterCmd.Flags().String("persona", "", "persona profile name (see 'personas list')")
	newsletterCmd.Flags().String("focus", "", "focus areas (comma-separated; persona defaults when empty)")
	newsletterCmd.Flags().String("time-range", "", "time range: 7d, 30d, 90d, 6m, 1y, or week/month/quarter/year")
	newsletterCmd.Flags().Int("timeout", 0, "streaming timeout in seconds (10-120, default 60)")
	newsletterCmd.Flags().String("correlation-id", "", "request correlation id (generated when empty)")
	newsletterCmd.Flags().Bool("offline", false, "answer from the local knowledge base instead of the agent service")
	newsletterCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(newsletterCmd)
}
