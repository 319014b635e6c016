package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morphuslabs/podseek/internal/core/domain"
)

var (
	ingestDir  string
	ingestJSON bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [url...]",
	Short: "Ingest videos or documents into the index",
	Long: `Fetches transcripts for the given video URLs, chunks them with
timestamps, and indexes the chunks. With --dir, local markdown and
text documents are ingested instead, with estimated timestamps.

Each item is processed independently: one failure never aborts the
batch. The command exits non-zero only when every item failed.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "ingest text documents under this directory")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output outcomes as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion not configured: set openai.api_key, pinecone.api_key and pinecone.index_host")
	}
	if len(args) == 0 && ingestDir == "" {
		return errors.New("nothing to ingest: pass video URLs or --dir")
	}
	if len(args) > 0 && metadataSvc == nil {
		return errors.New("video ingestion not configured: set youtube.api_key")
	}

	ctx := cmd.Context()
	var outcomes []domain.IngestOutcome

	if len(args) > 0 {
		outcomes = ingestService.IngestURLs(ctx, args)
	}
	if ingestDir != "" {
		dirOutcomes, err := ingestService.IngestDir(ctx, ingestDir)
		if err != nil {
			return fmt.Errorf("ingest directory: %w", err)
		}
		outcomes = append(outcomes, dirOutcomes...)
	}

	if ingestJSON {
		data, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal outcomes: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printOutcomes(cmd, outcomes)
	}

	if domain.AllFailed(outcomes) {
		return errors.New("all items failed to ingest")
	}
	return nil
}

func printOutcomes(cmd *cobra.Command, outcomes []domain.IngestOutcome) {
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusOK:
			cmd.Printf("  ok     %s (%d chunks)\n", o.Identifier, o.ChunkCount)
		case domain.StatusEmpty:
			cmd.Printf("  empty  %s\n", o.Identifier)
		case domain.StatusError:
			cmd.Printf("  error  %s [%s] %s\n", o.Identifier, o.ErrorKind, o.Detail)
		}
	}
	cmd.Printf("\n%d/%d succeeded\n", domain.SucceededCount(outcomes), len(outcomes))
}
