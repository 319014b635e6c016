package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
)

var (
	searchLimit  int
	searchRerank bool
	searchAnswer bool
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed transcripts",
	Long: `Runs the retrieval funnel: a wide vector similarity pass over the
index, optionally narrowed by a reranking pass, and prints scored
results with timestamped jump links.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 1, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchRerank, "rerank", false, "rerank candidates for precision")
	searchCmd.Flags().BoolVar(&searchAnswer, "answer", false, "generate an explanation per result")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search not configured: set openai.api_key, pinecone.api_key and pinecone.index_host")
	}

	results, err := searchService.Search(cmd.Context(), query, driving.SearchOptions{
		TopN:       searchLimit,
		Rerank:     searchRerank,
		WithAnswer: searchAnswer,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := results[i]

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.Title, r.Score)
		cmd.Printf("      at %s", r.StartHMS)
		if jump := domain.JumpURL(r.VideoURL, r.StartSeconds); jump != "" {
			cmd.Printf("  %s", jump)
		}
		cmd.Println()
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		if r.Answer != "" {
			cmd.Printf("      > %s\n", r.Answer)
		}
		cmd.Println()
	}
	return nil
}
