package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"NewsCurator/internal/domain"
	"NewsCurator/internal/source"
)

// FileLoader reads a feed document from the local filesystem, the
// layout used when the dashboard data lives next to the binary.
type FileLoader struct{}

var _ source.Loader = (*FileLoader)(nil)

// NewFileLoader builds the loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Kind identifies the strategy inside the registry.
func (l *FileLoader) Kind() string {
	return "file"
}

// Load reads and decodes one feed document from ref.Path.
func (l *FileLoader) Load(_ context.Context, ref source.Ref) (*domain.FeedDocument, error) {
	if ref.Path == "" {
		return nil, fmt.Errorf("feed %s has no path", ref.Name)
	}

	raw, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", ref.Name, err)
	}

	var doc domain.FeedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode feed %s: %w", ref.Name, err)
	}
	return &doc, nil
}
