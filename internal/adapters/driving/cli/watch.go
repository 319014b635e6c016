package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/logger"
)

// watchExtensions mirrors the extensions directory ingestion picks up.
var watchExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest new documents",
	Long: `Watches a directory tree for markdown and text files and ingests
each file as it is created or modified. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion not configured: set openai.api_key, pinecone.api_key and pinecone.index_host")
	}
	dir := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the whole tree; fsnotify watches are not recursive.
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for documents...\n", dir)
	ctx := cmd.Context()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// New subdirectories join the watch set.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("cannot watch %s: %v", event.Name, err)
					}
				}
				continue
			}

			if !watchExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}

			outcome := ingestService.IngestFile(ctx, event.Name)
			switch outcome.Status {
			case domain.StatusOK:
				cmd.Printf("  ok     %s (%d chunks)\n", outcome.Identifier, outcome.ChunkCount)
			case domain.StatusEmpty:
				cmd.Printf("  empty  %s\n", outcome.Identifier)
			case domain.StatusError:
				cmd.Printf("  error  %s [%s] %s\n", outcome.Identifier, outcome.ErrorKind, outcome.Detail)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}
