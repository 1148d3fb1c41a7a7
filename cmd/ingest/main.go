package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"kiosk-assistant-be/internal/config"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/internal/service"
	"kiosk-assistant-be/pkg/embedding"
	"kiosk-assistant-be/pkg/rag/index"
	"kiosk-assistant-be/pkg/rag/search"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		sources   []string
		chunkSize int
		dimension int
		query     string
		topK      int
		verbose   bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "kiosk-ingest",
		Short: "Fetch knowledge pages, chunk and embed them, and optionally run a test query",
		Long: `Runs the same ingestion the server runs at startup against an in-memory index,
using the hash embedding so no external service is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(verbose)
			defer log.Sync()

			provider := embedding.NewHashProvider(dimension)
			idx := index.NewMemoryIndex()
			knowledge := service.NewKnowledgeService(service.NewPageFetcher(30*time.Second), provider, idx, chunkSize, 4, log)

			report, err := knowledge.Initialize(cmd.Context(), sources)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(report)
			}
			printReport(report)

			if query == "" {
				return nil
			}
			return runQuery(cmd.Context(), search.NewRetriever(provider, idx), query, topK)
		},
	}

	cmd.Flags().StringSliceVar(&sources, "source", config.DefaultKnowledgeSources, "page URL to ingest (repeatable)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 1000, "characters per chunk")
	cmd.Flags().IntVar(&dimension, "dimension", embedding.DefaultDimension, "embedding dimension")
	cmd.Flags().StringVarP(&query, "query", "q", "", "query to run against the ingested chunks")
	cmd.Flags().IntVarP(&topK, "top", "k", 3, "results to show for --query")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func printReport(report *service.IngestReport) {
	ok, fail := color.New(color.FgGreen), color.New(color.FgRed)
	for _, s := range report.Sources {
		if s.Err != "" {
			fail.Printf("✗ %s: %s\n", s.URL, s.Err)
			continue
		}
		ok.Printf("✓ %s", s.URL)
		fmt.Printf(" %q, %d chunks\n", s.Title, s.Chunks)
	}
	fmt.Printf("%d documents indexed\n", report.Documents)
}

func runQuery(ctx context.Context, retriever *search.Retriever, query string, topK int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := retriever.Search(ctx, query, topK)
	if err != nil {
		return err
	}
	for i, r := range results {
		color.New(color.Bold).Printf("%d. %.4f %s\n", i+1, r.Score, r.Document.SourceLabel())
		content := r.Document.Content
		if runes := []rune(content); len(runes) > 200 {
			content = string(runes[:200]) + "…"
		}
		fmt.Println("   " + content)
	}
	return nil
}
