package retweet

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-hits/pkg/config"
)

// Source loads a finite batch of retweet records
type Source interface {
	// Name identifies the source kind in logs and metrics
	Name() string
	// Load reads every record. Skipped lines are counted, not returned as errors.
	Load(ctx context.Context) (*Batch, error)
	Close() error
}

// NewSource builds the source selected by cfg
func NewSource(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case config.SourceFile:
		return NewFileSource(cfg.Path), nil
	case config.SourceS3:
		return NewS3Source(ctx, cfg.S3)
	case config.SourcePostgres:
		return NewPostgresSource(ctx, cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}

// FileSource reads a local file, or stdin when Path is "-"
type FileSource struct {
	Path  string
	Stdin io.Reader
}

// NewFileSource creates a file source reading os.Stdin for "-"
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Stdin: os.Stdin}
}

func (s *FileSource) Name() string { return config.SourceFile }

func (s *FileSource) Load(ctx context.Context) (*Batch, error) {
	if s.Path == "-" {
		return Decode(ctx, "stdin", s.Stdin)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Decode(ctx, s.Path, Decompress(s.Path, f))
}

func (s *FileSource) Close() error { return nil }
