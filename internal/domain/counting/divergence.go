package counting

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryChange describes one count line whose live ledger quantity no
// longer matches the snapshot captured when the line was last recorded.
type InventoryChange struct {
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	SnapshotQuantity decimal.Decimal `json:"snapshot_quantity"`
	LiveQuantity     decimal.Decimal `json:"live_quantity"`
	Difference       decimal.Decimal `json:"difference"` // live - snapshot
}

func (c InventoryChange) describe() string {
	sign := ""
	if c.Difference.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("item %s: system quantity changed from %s to %s (%s%s) during count",
		c.ItemName, c.SnapshotQuantity, c.LiveQuantity, sign, c.Difference)
}

// ChangeReport is the outcome of checking all lines of a session against
// the current ledger.
type ChangeReport struct {
	Changes []InventoryChange
}

// HasChanges reports whether any line diverged from the ledger
func (r ChangeReport) HasChanges() bool {
	return len(r.Changes) > 0
}

// Warnings renders one human-readable warning per diverged line
func (r ChangeReport) Warnings() []string {
	warnings := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		warnings = append(warnings, c.describe())
	}
	return warnings
}

// Err wraps the report into a ConcurrencyError, or nil when clean
func (r ChangeReport) Err() error {
	if !r.HasChanges() {
		return nil
	}
	return &ConcurrencyError{Changes: r.Changes}
}

// DetectChanges compares each line's snapshot against the live ledger
// quantities. Items absent from the live map are treated as zero, matching
// how missing ledger rows read during counting.
func DetectChanges(lines []CountLine, live map[uuid.UUID]decimal.Decimal) ChangeReport {
	report := ChangeReport{Changes: make([]InventoryChange, 0)}
	for _, line := range lines {
		current, ok := live[line.ItemID]
		if !ok {
			current = decimal.Zero
		}
		if current.Equal(line.SnapshotQuantity) {
			continue
		}
		report.Changes = append(report.Changes, InventoryChange{
			ItemID:           line.ItemID,
			ItemName:         line.ItemName,
			SnapshotQuantity: line.SnapshotQuantity,
			LiveQuantity:     current,
			Difference:       current.Sub(line.SnapshotQuantity),
		})
	}
	return report
}

// ConcurrencyError signals that the ledger moved under an in-flight count.
// It carries the full change set so callers can surface every diverged item.
type ConcurrencyError struct {
	Changes []InventoryChange
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("live inventory changed for %d item(s) since their counts were recorded", len(e.Changes))
}
