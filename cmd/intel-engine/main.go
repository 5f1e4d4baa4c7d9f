// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the intel-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/intel-engine/internal/agent"
	"github.com/pdiddy/intel-engine/internal/engine"
	"github.com/pdiddy/intel-engine/internal/knowledge"
	"github.com/pdiddy/intel-engine/internal/persona"
	"github.com/pdiddy/intel-engine/internal/secrets"
	"github.com/pdiddy/intel-engine/internal/stream"
	"github.com/pdiddy/intel-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the intel-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "intel-engine",
	Short: "Persona-customized intelligence search pipeline",
	Long: `intel-engine runs persona-customized intelligence searches: it composes a
search prompt from a persona profile, streams the agent's response under a
deadline, scores the result, and renders a formatted report, newsletter, or
daily brief.

Each operation is a subcommand: search, newsletter, brief, personas, and
knowledge.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./intel-engine.yaml or ~/.config/intel-engine/config.yaml)")
	rootCmd.PersistentFlags().String("personas", "", "persona configuration YAML (default: ./personas.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("intel-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "intel-engine"))
		}
	}

	viper.SetEnvPrefix("INTEL_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("personas.path", "personas.yaml")
	viper.SetDefault("agent.endpoint", "http://localhost:8080/v1/stream")
	viper.SetDefault("agent.timeout", "30s")
	viper.SetDefault("agent.max_retries", 3)
	viper.SetDefault("knowledge.knowledge_dir", "knowledge")
	viper.SetDefault("knowledge.max_results", 20)
	viper.SetDefault("search.progress_interval", 50)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadRegistry builds the persona registry from the configured path.
func loadRegistry(cmd *cobra.Command) *persona.Registry {
	path, _ := cmd.Flags().GetString("personas")
	if path == "" {
		path = viper.GetString("personas.path")
	}
	return persona.Load(path, os.Stderr)
}

// buildEngine wires a search engine from configuration. When offline is
// set the engine uses the local knowledge-backed agent; the returned
// cleanup function closes any opened store.
func buildEngine(cmd *cobra.Command, offline bool) (*engine.Engine, func(), error) {
	registry := loadRegistry(cmd)

	searchCfg := types.SearchConfig{
		ProgressInterval: viper.GetInt("search.progress_interval"),
	}

	var (
		ag      stream.Agent
		cleanup = func() {}
	)
	if offline {
		store, err := knowledge.NewStore(types.KnowledgeConfig{
			KnowledgeDir: viper.GetString("knowledge.knowledge_dir"),
			MaxResults:   viper.GetInt("knowledge.max_results"),
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { store.Close() }
		ag = agent.NewLocalAgent(store, 5)
	} else {
		httpAgent := agent.NewHTTPAgent(types.AgentConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("agent.timeout"),
				UserAgent: "intel-engine/" + version,
			},
			Endpoint:   viper.GetString("agent.endpoint"),
			APIKey:     secrets.Lookup(loadedSecrets, secrets.AgentAPIKey),
			MaxRetries: viper.GetInt("agent.max_retries"),
		})
		httpAgent.Warnings = os.Stderr
		ag = httpAgent
	}

	return engine.New(registry, ag, searchCfg), cleanup, nil
}

// printSummary writes the one-line search trailer to stderr.
func printSummary(md types.SearchMetadata) {
	fmt.Fprintf(os.Stderr, "\nsearch %s: %.1fs, quality %s (%.2f)\n",
		md.CorrelationID, md.ElapsedSeconds, md.Quality.Grade, md.Quality.Overall)
	if md.Error != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", md.Error)
	}
}

// searchDeadline returns a generous outer bound for one CLI invocation.
func searchDeadline(timeoutSeconds int) time.Duration {
	return time.Duration(timeoutSeconds+30) * time.Second
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
