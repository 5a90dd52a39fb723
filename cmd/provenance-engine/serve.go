// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/provenance-engine/internal/corpus"
	"github.com/pdiddy/provenance-engine/internal/server"
	"github.com/pdiddy/provenance-engine/pkg/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	Long: `Serve starts the HTTP ingress. The corpus store is opened, seeded if
empty, and indexed before the listener comes up, so the first request
sees a ready vector space.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Server.Port = port
		}

		eng, store, err := buildEngine(cfg, true)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		seed, err := corpus.DefaultSeed()
		if err != nil {
			return err
		}
		inserted, err := store.Seed(ctx, seed)
		if err != nil {
			return err
		}
		if inserted > 0 {
			log.Infof("seeded corpus with %d documents", inserted)
		}
		if err := eng.ReloadCorpus(ctx); err != nil {
			return err
		}

		return server.New(eng, store, cfg.Server, version).Run()
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the configured listen port")

	rootCmd.AddCommand(serveCmd)
}
