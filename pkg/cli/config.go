package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/adapter"
	"github.com/t-okano/brieflet/pkg/chunk"
	"github.com/t-okano/brieflet/pkg/repository"
	"github.com/t-okano/brieflet/pkg/service/recall"
	"github.com/t-okano/brieflet/pkg/utils/logging"
	"github.com/t-okano/brieflet/pkg/vector"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds configuration values
type config struct {
	// Repository & storage
	project  string
	database string
	bucket   string

	// Generative backends
	provider       string
	geminiProject  string
	geminiLocation string
	openaiAPIKey   string

	// Logging & tuning
	logLevel   string
	tuningPath string
	tuning     tuning
}

// tuning is the optional YAML file with pipeline parameters
type tuning struct {
	ChunkMaxLen     int    `yaml:"chunk_max_len"`
	ChunkOverlap    int    `yaml:"chunk_overlap"`
	GenerativeModel string `yaml:"generative_model"`
	EmbeddingModel  string `yaml:"embedding_model"`
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Aliases:     []string{"b"},
			Usage:       "Cloud Storage bucket for material payloads",
			Sources:     cli.EnvVars("BRIEFLET_BUCKET"),
			Destination: &cfg.bucket,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("BRIEFLET_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to YAML file with pipeline tuning parameters",
			Sources:     cli.EnvVars("BRIEFLET_CONFIG"),
			Destination: &cfg.tuningPath,
		},
	}
}

// llmFlags returns flags for generative backend configuration
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "Generative backend: gemini or openai",
			Value:       "gemini",
			Sources:     cli.EnvVars("BRIEFLET_PROVIDER"),
			Destination: &cfg.provider,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &cfg.openaiAPIKey,
		},
	}
}

// setup loads the tuning file and installs the logger into the context
func (cfg *config) setup(ctx context.Context) (context.Context, error) {
	if cfg.tuningPath != "" {
		data, err := os.ReadFile(cfg.tuningPath)
		if err != nil {
			return ctx, goerr.Wrap(err, "failed to read tuning config", goerr.V("path", cfg.tuningPath))
		}
		if err := yaml.Unmarshal(data, &cfg.tuning); err != nil {
			return ctx, goerr.Wrap(err, "failed to parse tuning config", goerr.V("path", cfg.tuningPath))
		}
	}

	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger), nil
}

func (cfg *config) chunkParams() (int, int) {
	maxLen := cfg.tuning.ChunkMaxLen
	if maxLen <= 0 {
		maxLen = chunk.DefaultMaxLen
	}
	overlap := cfg.tuning.ChunkOverlap
	if overlap <= 0 {
		overlap = chunk.DefaultOverlap
	}
	return maxLen, overlap
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newStorage creates a new Storage adapter instance
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if cfg.bucket == "" {
		return nil, goerr.New("bucket is required")
	}

	storage, err := adapter.NewStorage(ctx, cfg.bucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}

// newGenAI creates the selected generative backend and returns its
// provider label
func (cfg *config) newGenAI(ctx context.Context) (adapter.GenAI, string, error) {
	switch cfg.provider {
	case "gemini":
		if cfg.geminiProject == "" {
			return nil, "", goerr.New("gemini-project is required")
		}
		var opts []adapter.GeminiOption
		if cfg.tuning.GenerativeModel != "" {
			opts = append(opts, adapter.WithGenerativeModel(cfg.tuning.GenerativeModel))
		}
		if cfg.tuning.EmbeddingModel != "" {
			opts = append(opts, adapter.WithEmbeddingModel(cfg.tuning.EmbeddingModel))
		}
		gemini, err := adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
		if err != nil {
			return nil, "", goerr.Wrap(err, "failed to create gemini client")
		}
		return gemini, "gemini", nil

	case "openai":
		if cfg.openaiAPIKey == "" {
			return nil, "", goerr.New("openai-api-key is required")
		}
		var opts []adapter.OpenAIOption
		if cfg.tuning.GenerativeModel != "" {
			opts = append(opts, adapter.WithOpenAIModel(cfg.tuning.GenerativeModel))
		}
		return adapter.NewOpenAI(cfg.openaiAPIKey, opts...), "openai", nil

	default:
		return nil, "", goerr.New("unknown provider", goerr.V("provider", cfg.provider))
	}
}

// newRecall wires the recall engine on top of repository, storage and
// backend
func (cfg *config) newRecall(repo repository.Repository, storage adapter.Storage, ai adapter.GenAI, index *vector.Index) *recall.Engine {
	maxLen, overlap := cfg.chunkParams()
	return recall.New(repo, storage, ai, index, recall.WithChunkParams(maxLen, overlap))
}
