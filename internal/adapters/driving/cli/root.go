// Package cli implements the podseek command-line interface using cobra.
// Commands drive the core services through the driving ports; adapters
// are wired once in the root command from configuration and environment.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morphuslabs/podseek/internal/adapters/driven/config/file"
	"github.com/morphuslabs/podseek/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/morphuslabs/podseek/internal/adapters/driven/llm/openai"
	"github.com/morphuslabs/podseek/internal/adapters/driven/metadata/youtube"
	"github.com/morphuslabs/podseek/internal/adapters/driven/rerank/cohere"
	"github.com/morphuslabs/podseek/internal/adapters/driven/throttle"
	"github.com/morphuslabs/podseek/internal/adapters/driven/transcript/timedtext"
	"github.com/morphuslabs/podseek/internal/adapters/driven/vector/pinecone"
	"github.com/morphuslabs/podseek/internal/chunker"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
	"github.com/morphuslabs/podseek/internal/core/services"
	"github.com/morphuslabs/podseek/internal/logger"
	"github.com/morphuslabs/podseek/internal/sources/textdoc"
)

// version is set at build time via ldflags.
var version = "dev"

// Services shared by the commands. Wired in initServices; commands
// must nil-check before use so misconfiguration yields a clear message
// instead of a panic.
var (
	cfgStore       driven.ConfigStore
	metadataSvc    driven.MetadataService
	ingestService  driving.Ingestor
	searchService  driving.Searcher
	indexAdmin     driving.IndexAdmin
	answerService  driven.AnswerGenerator
	chunkerService *chunker.Chunker
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "podseek",
	Short: "Search inside podcasts and talks",
	Long: `podseek indexes podcast and talk transcripts into a vector store
and answers free-text questions with timestamped links back into
the source video.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initServices wires adapters from configuration. Wiring is best
// effort: services whose credentials are missing stay nil and their
// commands explain what to configure.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfgStore = store

	ctx := cmd.Context()
	chunkerService = chunker.New()
	limiter := throttle.NewLimiter(throttle.DefaultInterval)

	if key := configValue("youtube.api_key", "YOUTUBE_API_KEY"); key != "" {
		svc, err := youtube.NewMetadataService(ctx, youtube.Config{APIKey: key}, limiter)
		if err != nil {
			logger.Warn("youtube metadata unavailable: %v", err)
		} else {
			metadataSvc = svc
		}
	}

	transcripts, err := timedtext.NewTranscriptService(timedtext.Config{
		ProxyURL: configValue("transcript.proxy_url", "PODSEEK_PROXY_URL"),
	}, limiter)
	if err != nil {
		return fmt.Errorf("transcript service: %w", err)
	}

	var embedder driven.EmbeddingService
	if key := configValue("openai.api_key", "OPENAI_API_KEY"); key != "" {
		es, err := openai.NewEmbeddingService(openai.Config{
			APIKey: key,
			Model:  cfgStore.GetString("openai.embed_model"),
		})
		if err != nil {
			logger.Warn("embedding service unavailable: %v", err)
		} else {
			embedder = es
		}

		answers, err := llmopenai.NewAnswerService(llmopenai.Config{
			APIKey: key,
			Model:  cfgStore.GetString("openai.chat_model"),
		})
		if err != nil {
			logger.Warn("answer service unavailable: %v", err)
		} else {
			answerService = answers
		}
	}

	var vectorStore driven.VectorStore
	pineconeKey := configValue("pinecone.api_key", "PINECONE_API_KEY")
	pineconeHost := configValue("pinecone.index_host", "PINECONE_INDEX_HOST")
	if pineconeKey != "" && pineconeHost != "" && embedder != nil {
		vs, err := pinecone.NewStore(pinecone.Config{
			APIKey:    pineconeKey,
			IndexHost: pineconeHost,
			Namespace: cfgStore.GetString("pinecone.namespace"),
		}, embedder)
		if err != nil {
			logger.Warn("vector store unavailable: %v", err)
		} else {
			vectorStore = vs
		}
	}

	var reranker driven.Reranker
	if key := configValue("cohere.api_key", "COHERE_API_KEY"); key != "" {
		rr, err := cohere.NewReranker(cohere.Config{APIKey: key})
		if err != nil {
			logger.Warn("reranker unavailable: %v", err)
		} else {
			reranker = rr
		}
	}

	if vectorStore != nil {
		docs := textdoc.NewBuilder(chunkerService, metadataSvc)
		ingestService = services.NewIngestService(metadataSvc, transcripts, vectorStore, chunkerService, docs)
		searchSvc := services.NewSearchService(vectorStore, reranker, answerService)
		searchService = searchSvc
		indexAdmin = searchSvc
	}

	return nil
}

// configValue reads a key from the config store, falling back to an
// environment variable.
func configValue(key, envVar string) string {
	if cfgStore != nil {
		if v := cfgStore.GetString(key); v != "" {
			return v
		}
	}
	return os.Getenv(envVar)
}
