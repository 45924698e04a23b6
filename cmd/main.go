package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"finsight-rag/internal/chunker"
	"finsight-rag/internal/config"
	"finsight-rag/internal/db"
	"finsight-rag/internal/embedding"
	"finsight-rag/internal/enhancer"
	"finsight-rag/internal/helper"
	"finsight-rag/internal/importer"
	"finsight-rag/internal/index"
	"finsight-rag/internal/knowledge"
	"finsight-rag/internal/llmservice"
	"finsight-rag/internal/rag"
	"finsight-rag/internal/ranker"
	"finsight-rag/internal/retriever"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	ask := flag.String("ask", "", "Question to answer with book-enhanced response")
	recommend := flag.String("recommend", "", "Query to get book recommendations for")
	retrieve := flag.String("retrieve", "", "Query to retrieve matching book chunks for")
	importPath := flag.String("import", "", "Path to a book file to import")
	dryRun := flag.Bool("dry-run", false, "Dry run, do not save to database")
	resetDB := flag.Bool("reset-db", false, "Drop and recreate the book table before anything else")
	flag.Parse()

	cfg := loadConfig(*configPath)
	ctx := context.Background()

	if *resetDB {
		resetDatabase(ctx, cfg)
	}

	if *importPath != "" {
		importBooks(ctx, cfg, *importPath, *dryRun)
		return
	}

	core := buildCore(ctx, cfg)

	switch {
	case *ask != "":
		answer, err := core.AnswerQuestion(ctx, *ask)
		if err != nil {
			log.Fatal().Err(err).Msg("Error answering question")
		}
		helper.PrettyPrint(answer)
	case *recommend != "":
		helper.PrettyPrint(core.GetBookRecommendations(ctx, *recommend, ranker.DefaultTopN))
	case *retrieve != "":
		helper.PrettyPrint(core.Retrieve(ctx, *retrieve, cfg.RAG.TopK))
	default:
		log.Fatal().Msg("Please provide one of -ask, -recommend, -retrieve or -import")
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Warn().Err(err).Msg("Error loading config, using defaults")
		return config.Default()
	}
	log.Debug().Interface("config", cfg.RAG).Msg("Loaded config")
	return cfg
}

// buildCore wires every component explicitly; missing backends degrade
// to keyword retrieval and draft-only answers instead of failing.
func buildCore(ctx context.Context, cfg *config.Config) *rag.Core {
	store := knowledge.NewStore(newPersistence(cfg))
	store.Load(ctx)

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Warn().Err(err).Msg("Embedding backend unavailable, running in keyword fallback mode")
	}
	// keep nil concrete pointers out of the interface fields
	var idxEmbedder index.Embedder
	var retEmbedder retriever.Embedder
	if embedder != nil {
		idxEmbedder, retEmbedder = embedder, embedder
	}

	chk := chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	var builder *index.Builder
	if cfg.RAG.InMemory || cfg.RAG.DBPath == "" {
		builder = index.NewBuilder(idxEmbedder, cfg.RAG.Collection)
	} else {
		builder = index.NewPersistentBuilder(idxEmbedder, cfg.RAG.Collection, cfg.RAG.DBPath)
	}

	ret := retriever.New(store, retEmbedder)
	rnk := ranker.New(store, ret)

	generator, err := newGenerator(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Generative backend unavailable, answers will not be refined")
	}
	enh := enhancer.New(ret, generator)

	core := rag.NewCore(store, chk, builder, ret, rnk, enh, cfg)
	if err := core.RebuildIndex(ctx); err != nil {
		log.Error().Err(err).Msg("Error building index")
	}
	return core
}

func resetDatabase(ctx context.Context, cfg *config.Config) {
	if cfg.Database.DSN == "" {
		log.Fatal().Msg("No database configured, nothing to reset")
	}
	sqldb, err := db.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	bunDB := db.NewDB(sqldb, cfg.Database.Debug)
	if err := db.DropBookInsights(ctx, bunDB); err != nil {
		log.Fatal().Err(err).Msg("Error dropping book table")
	}
	if err := db.InitDB(ctx, bunDB); err != nil {
		log.Fatal().Err(err).Msg("Error recreating book table")
	}
	log.Info().Msg("Book table reset")
}

func newPersistence(cfg *config.Config) knowledge.Persistence {
	if cfg.Database.DSN == "" {
		return nil
	}
	sqldb, err := db.ConnectDB(&cfg.Database)
	if err != nil {
		log.Error().Err(err).Msg("Error connecting to database")
		return nil
	}
	bunDB := db.NewDB(sqldb, cfg.Database.Debug)
	if err := db.InitDB(context.Background(), bunDB); err != nil {
		log.Error().Err(err).Msg("Error initializing database")
		return nil
	}
	return knowledge.NewBunPersistence(bunDB)
}

// newGenerator returns a nil interface, not a typed nil, when the chat
// backend is not configured.
func newGenerator(cfg *config.Config) (llmservice.Generator, error) {
	client, err := llmservice.NewClient(&cfg.ChatLLM)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return client, nil
}

func importBooks(ctx context.Context, cfg *config.Config, filePath string, dryRun bool) {
	batchID, _ := helper.GenerateUUID()
	log.Info().Str("batch", batchID).Str("file", filePath).Msg("Importing books")

	docs, err := importer.ImportFile(filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error importing file")
	}
	if len(docs) == 0 {
		log.Warn().Msg("No book content found in file")
		return
	}
	helper.PrettyPrint(docs)

	if dryRun {
		return
	}

	persistence := newPersistence(cfg)
	if persistence == nil {
		log.Fatal().Msg("No database configured, cannot save imported books")
	}
	for _, doc := range docs {
		if err := persistence.SaveDocument(ctx, doc); err != nil {
			log.Error().Err(err).Str("title", doc.Title).Msg("Error saving book")
		}
	}
	log.Info().Str("batch", batchID).Int("books", len(docs)).Msg("Import complete")
}
