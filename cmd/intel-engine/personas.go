// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Inspect and reload persona profiles",
	Long: `Personas manages the persona registry. Profiles come from the configured
YAML file; when it is missing or unparsable the five built-in profiles are
served instead.`,
}

var personasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered persona profiles",
	RunE:  runPersonasList,
}

func runPersonasList(cmd *cobra.Command, args []string) error {
	registry := loadRegistry(cmd)
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if jsonOutput {
		type entry struct {
			Name        string   `json:"name"`
			DisplayName string   `json:"display_name"`
			Description string   `json:"description"`
			FocusAreas  []string `json:"focus_areas"`
		}
		entries := make([]entry, 0, registry.Len())
		for _, name := range registry.Names() {
			p, err := registry.Get(name)
			if err != nil {
				return err
			}
			entries = append(entries, entry{
				Name:        name,
				DisplayName: p.DisplayName,
				Description: p.Description,
				FocusAreas:  p.FocusAreas,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Printf("%d personas (%s)\n\n", registry.Len(), registry.Source())
	for _, name := range registry.Names() {
		p, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-18s  %s\n", name, p.DisplayName)
		fmt.Printf("%-18s  %s\n", "", strings.Join(p.FocusAreas, ", "))
	}
	return nil
}

var personasShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one persona profile in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := loadRegistry(cmd)
		p, err := registry.Get(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var personasWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the persona file and reload on change",
	Long: `Watch blocks and reloads the registry whenever the persona configuration
file changes on disk. Intended for development alongside a long-running
service embedding the engine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := loadRegistry(cmd)
		fmt.Fprintf(os.Stderr, "watching persona configuration (%d profiles loaded)\n", registry.Len())
		return registry.Watch(context.Background(), os.Stderr)
	},
}

func init() {
	personasListCmd.Flags().Bool("json", false, "output profiles as JSON")

	personasCmd.AddCommand(personasListCmd)
	personasCmd.AddCommand(personasShowCmd)
	personasCmd.AddCommand(personasWatchCmd)

	rootCmd.AddCommand(personasCmd)
}
