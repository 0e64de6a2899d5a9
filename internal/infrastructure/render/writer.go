package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"NewsCurator/internal/curation"
	"NewsCurator/internal/domain"
	"NewsCurator/internal/ports"
)

// Writer publishes view-model documents as JSON files consumed by the
// static dashboard.
type Writer struct {
	dir       string
	ledgerCap int
}

var _ ports.ViewWriter = (*Writer)(nil)

// NewWriter targets an output directory; ledgerCap bounds the rejection
// records included for diagnostic display.
func NewWriter(dir string, ledgerCap int) *Writer {
	return &Writer{dir: dir, ledgerCap: ledgerCap}
}

// Write serializes one per-language view model to brief_<lang>.json.
func (w *Writer) Write(vm *domain.ViewModel) error {
	if vm == nil {
		return nil
	}

	capped := *vm
	capped.Rejected = curation.Capped(vm.Rejected, w.ledgerCap)

	payload, err := json.MarshalIndent(&capped, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view model: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("brief_%s.json", vm.Language))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
