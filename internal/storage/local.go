package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// LocalStager stages uploads as temp files on local disk
type LocalStager struct {
	dir string
}

// NewLocalStager stages into dir, or the OS temp dir when dir is empty
func NewLocalStager(dir string) (*LocalStager, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create staging dir: %w", err)
		}
	}
	return &LocalStager{dir: dir}, nil
}

func (s *LocalStager) Stage(ctx context.Context, name string, r io.Reader, size int64) (*StagedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(s.dir, "upload-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	cleanup := func() error {
		closeErr := f.Close()
		removeErr := os.Remove(f.Name())
		if errors.Is(removeErr, os.ErrNotExist) {
			removeErr = nil
		}
		return errors.Join(closeErr, removeErr)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	return newStagedFile(name, written, f, cleanup), nil
}

// Path is exposed for tests that verify cleanup.
func (f *StagedFile) Path() string {
	if file, ok := f.reader.(*os.File); ok {
		return file.Name()
	}
	return ""
}
