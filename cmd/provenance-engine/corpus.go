// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/provenance-engine/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the reference corpus",
}

var corpusSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty corpus with reference documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := corpus.NewStore(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		file, _ := cmd.Flags().GetString("file")
		var docs []corpus.SeedDocument
		if file != "" {
			docs, err = corpus.LoadSeedFile(file)
		} else {
			docs, err = corpus.DefaultSeed()
		}
		if err != nil {
			return err
		}

		inserted, err := store.Seed(context.Background(), docs)
		if err != nil {
			return err
		}
		if inserted == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "corpus already populated, nothing inserted")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d documents\n", inserted)
		return nil
	},
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := corpus.NewStore(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.List(context.Background())
		if err != nil {
			return err
		}
		for _, d := range docs {
			src := "-"
			if d.Source != nil {
				src = *d.Source
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-14s %-10s %s\n", d.ID, d.Category, src, d.Title)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents\n", len(docs))
		return nil
	},
}

var corpusClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all corpus documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := corpus.NewStore(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "corpus cleared")
		return nil
	},
}

var corpusAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a document to the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		category, _ := cmd.Flags().GetString("category")
		file, _ := cmd.Flags().GetString("file")
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}

		var source *string
		if s, _ := cmd.Flags().GetString("source"); s != "" {
			source = &s
		}

		store, err := corpus.NewStore(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Add(context.Background(), title, category, source, string(data))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added document %d\n", id)
		return nil
	},
}

func init() {
	corpusSeedCmd.Flags().String("file", "", "seed from a YAML file instead of the built-in set")

	corpusAddCmd.Flags().String("title", "", "document title")
	corpusAddCmd.Flags().String("category", "", "document category")
	corpusAddCmd.Flags().String("source", "", "optional provenance note")
	corpusAddCmd.Flags().String("file", "", "path to the document content")
	corpusAddCmd.MarkFlagRequired("title")
	corpusAddCmd.MarkFlagRequired("category")
	corpusAddCmd.MarkFlagRequired("file")

	corpusCmd.AddCommand(corpusSeedCmd, corpusListCmd, corpusClearCmd, corpusAddCmd)
	rootCmd.AddCommand(corpusCmd)
}
