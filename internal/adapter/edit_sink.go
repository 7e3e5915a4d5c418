package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

const defaultFilePerm os.FileMode = 0o644

// EditSink applies a batch of edits to one file. A batch is applied as a
// whole or not at all, and the resulting snapshot is returned.
type EditSink interface {
	Apply(ctx context.Context, path m.Path, edits []m.TextEdit) (Document, error)
}

// FileEditSink reads the current file contents, applies the edits and writes
// the result back.
type FileEditSink struct {
	fs     SourceFSAdapter
	logger *slog.Logger
}

// NewFileEditSink constructs a FileEditSink.
func NewFileEditSink(fs SourceFSAdapter, logger *slog.Logger) *FileEditSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &FileEditSink{fs: fs, logger: logger}
}

// Apply implements EditSink.
func (s *FileEditSink) Apply(ctx context.Context, path m.Path, edits []m.TextEdit) (Document, error) {
	content, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	perm := defaultFilePerm
	if info, err := s.fs.FileInfo(ctx, path); err == nil {
		perm = info.Mode().Perm()
	}

	updated, err := NewTextDocument(path, content).Apply(edits)
	if err != nil {
		return nil, fmt.Errorf("apply edits to %s: %w", path, err)
	}

	if err := s.fs.WriteFile(ctx, path, []byte(updated), perm); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Debug("applied edits", "path", path, "edits", len(edits))

	return NewTextDocument(path, []byte(updated)), nil
}

// MemoryEditSink keeps documents in memory. It backs dry runs and tests.
type MemoryEditSink struct {
	mu   sync.Mutex
	docs map[m.Path]*TextDocument
}

// NewMemoryEditSink creates a sink seeded with the given documents.
func NewMemoryEditSink(docs ...*TextDocument) *MemoryEditSink {
	sink := &MemoryEditSink{docs: make(map[m.Path]*TextDocument, len(docs))}
	for _, doc := range docs {
		sink.docs[doc.Path()] = doc
	}

	return sink
}

// Apply implements EditSink.
func (s *MemoryEditSink) Apply(ctx context.Context, path m.Path, edits []m.TextEdit) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return nil, fmt.Errorf("document %s is not open", path)
	}

	updated, err := doc.Apply(edits)
	if err != nil {
		return nil, fmt.Errorf("apply edits to %s: %w", path, err)
	}

	next := NewTextDocument(path, []byte(updated))
	s.docs[path] = next

	return next, nil
}

// Document returns the latest snapshot held for path.
func (s *MemoryEditSink) Document(path m.Path) (*TextDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]

	return doc, ok
}
