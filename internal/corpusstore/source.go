package corpusstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahfuzul873/m873/internal/config"
)

// Source provides the raw chatbot dataset text. It is read exactly once at
// startup; a load failure is not fatal to the matcher, which degrades to an
// empty corpus.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

func New(ctx context.Context, cfg config.CorpusConfig) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "local":
		if cfg.Path == "" {
			return nil, fmt.Errorf("corpus path is required for local source")
		}
		return &localSource{path: cfg.Path}, nil
	case "s3":
		return newS3Source(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported corpus source type: %s", cfg.Type)
	}
}
