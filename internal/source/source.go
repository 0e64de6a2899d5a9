package source

import (
	"context"
	"fmt"

	"NewsCurator/internal/domain"
)

// Ref points at one configured feed document.
type Ref struct {
	Name string
	Kind string
	URL  string
	Path string
}

// Loader captures a single feed-loading strategy (HTTP, file, etc.).
type Loader interface {
	Kind() string
	Load(ctx context.Context, ref Ref) (*domain.FeedDocument, error)
}

// Registry keeps a mapping from loader kinds to their implementations.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: map[string]Loader{}}
}

// Register adds or replaces a loader implementation.
func (r *Registry) Register(loader Loader) {
	if r.loaders == nil {
		r.loaders = map[string]Loader{}
	}
	r.loaders[loader.Kind()] = loader
}

// Resolve returns a loader by kind or an error if it is absent.
func (r *Registry) Resolve(kind string) (Loader, error) {
	if loader, ok := r.loaders[kind]; ok {
		return loader, nil
	}
	return nil, fmt.Errorf("feed loader %s is not registered", kind)
}
