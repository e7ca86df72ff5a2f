package corpusstore

import (
	"context"
	"os"
)

type localSource struct {
	path string
}

func (s *localSource) Load(ctx context.Context) ([]byte, error) {
	_ = ctx
	return os.ReadFile(s.path)
}
