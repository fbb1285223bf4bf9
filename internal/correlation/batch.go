package correlation

import (
	"time"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
)

// Correlation is the decision for one id.
type Correlation struct {
	Duration time.Duration
	Paired   bool
	Alert    bool
}

// Batch is the sorted, grouped view of one run's events.
// It is built once and only read afterwards.
type Batch struct {
	threshold time.Duration
	sorted    []entity.Event
	groups    map[string][]entity.Event
}

func NewBatch(events []entity.Event, threshold time.Duration) *Batch {
	sorted := GroupAndSort(events)
	groups := make(map[string][]entity.Event)

	// sorted by id, so each group is a contiguous sub-slice
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i].ID == sorted[start].ID {
			continue
		}

		groups[sorted[start].ID] = sorted[start:i:i]
		start = i
	}

	return &Batch{
		threshold: threshold,
		sorted:    sorted,
		groups:    groups,
	}
}

// Events returns the globally sorted sequence.
func (b *Batch) Events() []entity.Event {
	return b.sorted
}

func (b *Batch) Group(id string) []entity.Event {
	return b.groups[id]
}

func (b *Batch) Threshold() time.Duration {
	return b.threshold
}

// Correlate deduplicates the records of id, pairs the first two and decides the alert.
// Paired is false when fewer than two distinct records exist.
func (b *Batch) Correlate(id string) Correlation {
	unique := Deduplicate(b.groups[id])

	d, ok := ComputeDuration(unique)
	if !ok {
		return Correlation{}
	}

	return Correlation{
		Duration: d,
		Paired:   true,
		Alert:    DecideAlert(d, b.threshold),
	}
}
