package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"NewsCurator/internal/domain"
)

func TestWriteViewModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writer := NewWriter(dir, 2)

	vm := &domain.ViewModel{
		Language:    domain.LangEN,
		GeneratedAt: "2026-08-30T12:00:00Z",
		Sectors: []domain.CuratedSector{{
			Name:  "Energy",
			Items: []domain.CuratedItem{{ID: "en-1", Title: "Oil update"}},
		}},
		Rejected: []domain.RejectionRecord{
			{Reason: domain.ReasonWrongLanguage, Title: "a"},
			{Reason: domain.ReasonURLNotArticle, Title: "b"},
			{Reason: domain.ReasonPreviewEmpty, Title: "c"},
		},
	}

	if err := writer.Write(vm); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "brief_en.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded domain.ViewModel
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Language != domain.LangEN || len(decoded.Sectors) != 1 {
		t.Fatalf("unexpected document: %+v", decoded)
	}
	if len(decoded.Rejected) != 2 || decoded.Rejected[0].Title != "b" {
		t.Fatalf("ledger should keep the 2 most recent records: %+v", decoded.Rejected)
	}

	// Capping must not touch the in-memory view model.
	if len(vm.Rejected) != 3 {
		t.Fatal("write must not mutate the caller's records")
	}
}

func TestWriteNilViewModel(t *testing.T) {
	t.Parallel()

	writer := NewWriter(t.TempDir(), 0)
	if err := writer.Write(nil); err != nil {
		t.Fatalf("nil view model should be a no-op: %v", err)
	}
}
