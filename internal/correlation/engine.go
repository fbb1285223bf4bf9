package correlation

import (
	"cmp"
	"slices"
	"time"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
)

// GroupAndSort returns a copy of events ordered by id, then by state.
// The sort is stable: records with the same id and state keep their arrival order.
func GroupAndSort(events []entity.Event) []entity.Event {
	ret := slices.Clone(events)

	slices.SortStableFunc(ret, func(a, b entity.Event) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}

		return cmp.Compare(a.State, b.State)
	})

	return ret
}

// Deduplicate keeps the first record for each (id, state).
func Deduplicate(events []entity.Event) []entity.Event {
	type key struct {
		id    string
		state entity.State
	}

	seen := make(map[key]struct{}, len(events))
	ret := make([]entity.Event, 0, len(events))

	for _, event := range events {
		k := key{id: event.ID, state: event.State}

		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		ret = append(ret, event)
	}

	return ret
}

// ComputeDuration returns the absolute elapsed time between the first two records.
// Records past the second one are ignored.
func ComputeDuration(events []entity.Event) (time.Duration, bool) {
	if len(events) < 2 {
		return 0, false
	}

	d := events[1].Timestamp.Sub(events[0].Timestamp)
	if d < 0 {
		d = -d
	}

	return d, true
}

// DecideAlert reports whether d is strictly above threshold.
func DecideAlert(d, threshold time.Duration) bool {
	return d > threshold
}
