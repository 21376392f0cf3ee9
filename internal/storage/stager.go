package storage

import (
	"context"
	"io"
	"sync"
)

// Stager holds an upload somewhere random-access readable for the duration
// of one extraction.
type Stager interface {
	Stage(ctx context.Context, name string, r io.Reader, size int64) (*StagedFile, error)
}

// StagedFile is a staged upload. Callers must call Remove on every path.
type StagedFile struct {
	Name string
	Size int64

	reader  io.ReaderAt
	cleanup func() error
	once    sync.Once
	err     error
}

func newStagedFile(name string, size int64, reader io.ReaderAt, cleanup func() error) *StagedFile {
	return &StagedFile{Name: name, Size: size, reader: reader, cleanup: cleanup}
}

func (f *StagedFile) ReadAt(p []byte, off int64) (int, error) {
	return f.reader.ReadAt(p, off)
}

// Remove releases the staged copy. Safe to call more than once.
func (f *StagedFile) Remove() error {
	f.once.Do(func() {
		if f.cleanup != nil {
			f.err = f.cleanup()
		}
	})
	return f.err
}
