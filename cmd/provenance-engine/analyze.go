// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/provenance-engine/internal/corpus"
	"github.com/pdiddy/provenance-engine/internal/engine"
	"github.com/pdiddy/provenance-engine/internal/retrieval"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze text against the corpus and external sources",
	Long: `Analyze runs both analysis paths over the given text: TF-IDF cosine
similarity against the local reference corpus, and keyword retrieval from
Crossref with trigram overlap scoring against candidate abstracts. The two
paths run concurrently and report independently; an external outage never
suppresses the local result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		text, err := analyzeInput(cmd)
		if err != nil {
			return err
		}
		studentID, _ := cmd.Flags().GetString("student")
		localOnly, _ := cmd.Flags().GetBool("local-only")
		externalOnly, _ := cmd.Flags().GetBool("external-only")
		asJSON, _ := cmd.Flags().GetBool("json")
		if localOnly && externalOnly {
			return fmt.Errorf("--local-only and --external-only are mutually exclusive")
		}

		eng, store, err := buildEngine(cfg, !localOnly)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		if err := eng.ReloadCorpus(ctx); err != nil {
			return err
		}

		var res engine.Result
		switch {
		case localOnly:
			res.Local, res.LocalErr = eng.AnalyzeLocal(ctx, studentID, text)
		case externalOnly:
			res.External, res.ExternalErr = eng.AnalyzeExternal(ctx, studentID, text)
		default:
			res = eng.Analyze(ctx, studentID, text)
		}

		return printResult(res, asJSON, cmd.OutOrStdout())
	},
}

func init() {
	analyzeCmd.Flags().String("file", "", "read the text to analyze from a file")
	analyzeCmd.Flags().String("text", "", "text to analyze")
	analyzeCmd.Flags().String("student", "cli", "identifier echoed into the reports")
	analyzeCmd.Flags().Bool("local-only", false, "run only the local corpus path")
	analyzeCmd.Flags().Bool("external-only", false, "run only the external retrieval path")
	analyzeCmd.Flags().Bool("json", false, "output reports as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzeInput resolves the text from --text, --file, or stdin.
func analyzeInput(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")
	switch {
	case text != "" && file != "":
		return "", fmt.Errorf("--text and --file are mutually exclusive")
	case text != "":
		return text, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("provide the text with --text or --file")
	}
}

// buildEngine assembles the engine. The retriever is only constructed
// when the external path can run, so local-only analyses work without a
// configured contact token.
func buildEngine(cfg types.Config, withRetriever bool) (*engine.Engine, *corpus.Store, error) {
	store, err := corpus.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	var retriever engine.Retriever
	if withRetriever {
		retriever, err = retrieval.NewClient(cfg.Crossref)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
	}
	return engine.New(store, retriever, cfg), store, nil
}

func printResult(res engine.Result, asJSON bool, w io.Writer) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		out := map[string]any{}
		if res.Local != nil {
			out["local"] = res.Local
		}
		if res.External != nil {
			out["external"] = res.External
		}
		if res.LocalErr != nil {
			out["local_error"] = res.LocalErr.Error()
		}
		if res.ExternalErr != nil {
			out["external_error"] = res.ExternalErr.Error()
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		if res.Local != nil {
			printLocal(res.Local, w)
		}
		if res.External != nil {
			printExternal(res.External, w)
		}
		if res.LocalErr != nil {
			fmt.Fprintf(w, "local analysis failed: %v\n", res.LocalErr)
		}
		if res.ExternalErr != nil {
			fmt.Fprintf(w, "external analysis failed: %v\n", res.ExternalErr)
		}
	}

	if res.LocalErr != nil || res.ExternalErr != nil {
		return fmt.Errorf("analysis incomplete")
	}
	return nil
}

func printLocal(r *types.AnalysisResponse, w io.Writer) {
	fmt.Fprintf(w, "Decision: %s (%s)\n", r.Decision, r.DecisionColor)
	fmt.Fprintf(w, "Highest score: %.4f over %d words\n", r.HighestScore, r.WordCount)
	for i, m := range r.TopMatches {
		src := ""
		if m.Source != nil {
			src = " [" + *m.Source + "]"
		}
		fmt.Fprintf(w, "  %d. %.4f  %s (%s)%s\n", i+1, m.Score, m.Title, m.Category, src)
	}
	fmt.Fprintln(w)
}

func printExternal(r *types.ExternalAnalysisResponse, w io.Writer) {
	fmt.Fprintf(w, "External query: %s (%d results in %.3fs)\n",
		strings.Join(r.QueryKeywords, " "), r.ResultCount, r.LatencySeconds)
	for i, s := range r.Sources {
		title := "(untitled)"
		if s.Title != nil {
			title = *s.Title
		}
		line := fmt.Sprintf("  %d. %s", i+1, title)
		if s.Year != nil {
			line += fmt.Sprintf(" (%d)", *s.Year)
		}
		if s.PlagiarismScore != nil {
			line += fmt.Sprintf("  overlap %.4f", *s.PlagiarismScore)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
