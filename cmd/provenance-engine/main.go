// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the provenance-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/provenance-engine/internal/secrets"
	"github.com/pdiddy/provenance-engine/pkg/log"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretMailto holds the contact address loaded from .secrets/ at startup.
var secretMailto string

// rootCmd is the base command for the provenance-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "provenance-engine",
	Short: "Text similarity and provenance scoring for OCR-extracted documents",
	Long: `provenance-engine analyzes a block of extracted document text two ways:
locally, against a reference corpus using TF-IDF cosine similarity, and
externally, against the Crossref bibliographic index using keyword retrieval
and trigram overlap scoring.

Run a one-off analysis with "analyze", serve the HTTP API with "serve", and
manage the reference corpus with "corpus".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		m, err := secrets.Mailto(".secrets/")
		if err != nil {
			return err
		}
		secretMailto = m
		if m != "" {
			fmt.Fprintf(os.Stderr, "Loaded secret: %s\n", secrets.MailtoKey)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./provenance-engine.yaml or ~/.config/provenance-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("provenance-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "provenance-engine"))
		}
	}

	viper.SetEnvPrefix("PROVENANCE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, the config file, environment variables,
// and secrets into the full configuration, then initializes logging.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	// The secrets file overrides the config file for the contact token.
	if secretMailto != "" {
		cfg.Crossref.Mailto = secretMailto
	}

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	return cfg, nil
}

func main() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
