// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/intel-engine/internal/knowledge"
	"github.com/pdiddy/intel-engine/pkg/types"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage the curated knowledge base (ingest, query, rm)",
	Long: `Knowledge manages the local SQLite note index that backs offline searches.
Use subcommands to ingest note files, query them, or remove notes.`,
}

// --- ingest subcommand ---

var knowledgeIngestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a YAML note file into the knowledge base",
	Long: `Ingest reads a YAML note file and upserts its notes into the SQLite index
with FTS5 full-text search. Notes without an id get a generated one;
re-ingesting a file updates existing notes in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runKnowledgeIngest,
}

func runKnowledgeIngest(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), args[0], os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d note(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var knowledgeQueryCmd = &cobra.Command{
	Use:   "query [terms]",
	Short: "Query the knowledge base with full-text search",
	Long: `Query searches the note index using FTS5 full-text search. Without terms
it lists notes grouped by topic.`,
	RunE: runKnowledgeQuery,
}

func runKnowledgeQuery(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	notes, err := store.Retrieve(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	}

	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	for _, note := range notes {
		content := note.Content
		if len(content) > 70 {
			content = content[:67] + "..."
		}
		fmt.Printf("%-36s  %-24s  %s\n", note.ID, note.Topic, content)
	}
	fmt.Printf("\n%d notes\n", len(notes))
	return nil
}

// --- rm subcommand ---

var knowledgeRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a note from the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Remove(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("note %s not found", args[0])
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*knowledge.Store, error) {
	knowledgeDir, _ := cmd.Flags().GetString("knowledge-dir")
	if knowledgeDir == "" {
		knowledgeDir = viper.GetString("knowledge.knowledge_dir")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("knowledge.max_results")
	}

	return knowledge.NewStore(types.KnowledgeConfig{
		KnowledgeDir: knowledgeDir,
		MaxResults:   maxResults,
	})
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	knowledgeCmd.PersistentFlags().String("knowledge-dir", "", "base directory for the note index (contains index/)")
	knowledgeCmd.PersistentFlags().Int("max-results", 0, "maximum number of query results (0 = config default)")

	// Query flags.
	knowledgeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	knowledgeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	knowledgeCmd.AddCommand(knowledgeIngestCmd)
	knowledgeCmd.AddCommand(knowledgeQueryCmd)
	knowledgeCmd.AddCommand(knowledgeRmCmd)

	rootCmd.AddCommand(knowledgeCmd)
}
