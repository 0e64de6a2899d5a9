package curation

import "NewsCurator/internal/domain"

// Ledger is the append-only record of exclusion decisions for one
// pipeline invocation. The ledger itself is unbounded; display capping
// is a presentation concern handled by Capped.
type Ledger struct {
	records []domain.RejectionRecord
}

// NewLedger starts a fresh ledger, optionally seeded with precomputed
// build-time records. Seeds are concatenated, never deduplicated.
func NewLedger(precomputed []domain.RejectionRecord) *Ledger {
	ledger := &Ledger{}
	for _, rec := range precomputed {
		if rec.Stage == "" {
			rec.Stage = domain.StageBuild
		}
		ledger.records = append(ledger.records, rec)
	}
	return ledger
}

// Append records one rejection decision.
func (l *Ledger) Append(reason domain.RejectionReason, title, url, stage string) {
	l.records = append(l.records, domain.RejectionRecord{
		Reason: reason,
		Title:  title,
		URL:    url,
		Stage:  stage,
	})
}

// Records returns the accumulated records in append order.
func (l *Ledger) Records() []domain.RejectionRecord {
	return l.records
}

// Len reports the number of accumulated records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Capped bounds a record list for display, keeping the most recent
// entries.
func Capped(records []domain.RejectionRecord, limit int) []domain.RejectionRecord {
	if limit <= 0 || len(records) <= limit {
		return records
	}
	return records[len(records)-limit:]
}
