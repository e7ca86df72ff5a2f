package corpusstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mahfuzul873/m873/internal/config"
)

func TestLocalSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.txt")
	require.NoError(t, os.WriteFile(path, []byte("Q1 (EN): hi\nA:\nanswer\n"), 0o644))

	source, err := New(context.Background(), config.CorpusConfig{Type: "local", Path: path})
	require.NoError(t, err)

	raw, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, string(raw), "Q1 (EN)")
}

func TestLocalSourceMissingFile(t *testing.T) {
	source, err := New(context.Background(), config.CorpusConfig{Type: "local", Path: "/nonexistent/dataset.txt"})
	require.NoError(t, err)

	_, err = source.Load(context.Background())
	require.Error(t, err)
}

func TestNewSourceValidation(t *testing.T) {
	_, err := New(context.Background(), config.CorpusConfig{Type: "local"})
	require.Error(t, err)

	_, err = New(context.Background(), config.CorpusConfig{Type: "ftp"})
	require.Error(t, err)
}
