package result

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
)

// MemoryStore keeps results in process memory. Data is lost when the process exits.
type MemoryStore struct {
	mu   *sync.Mutex
	rows map[string]entity.Result
}

func NewMemoryStore() MemoryStore {
	return MemoryStore{
		mu:   &sync.Mutex{},
		rows: make(map[string]entity.Result),
	}
}

func (s MemoryStore) EnsureSchema(ctx context.Context) error {
	return nil
}

func (s MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.rows)

	return nil
}

func (s MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.rows[id]

	return ok, nil
}

func (s MemoryStore) DurationUnset(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]

	return ok && row.Duration == nil, nil
}

func (s MemoryStore) Insert(ctx context.Context, result entity.Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[result.ID]; ok {
		return false, nil
	}

	s.rows[result.ID] = entity.Result{
		ID:   result.ID,
		Type: result.Type,
		Host: result.Host,
	}

	return true, nil
}

func (s MemoryStore) UpdateDurationAndAlert(ctx context.Context, id string, duration time.Duration, alert bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok || row.Duration != nil {
		return false, nil
	}

	row.Duration = &duration
	row.Alert = alert
	s.rows[id] = row

	return true, nil
}

func (s MemoryStore) QueryAlerts(ctx context.Context) ([]entity.Result, error) {
	return s.query(func(r entity.Result) bool { return r.Alert }), nil
}

func (s MemoryStore) QueryAll(ctx context.Context) ([]entity.Result, error) {
	return s.query(func(entity.Result) bool { return true }), nil
}

func (s MemoryStore) query(filter func(entity.Result) bool) []entity.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]entity.Result, 0, len(s.rows))

	for _, row := range s.rows {
		if filter(row) {
			ret = append(ret, copyResult(row))
		}
	}

	slices.SortFunc(ret, func(a, b entity.Result) int {
		return strings.Compare(a.ID, b.ID)
	})

	return ret
}

func copyResult(r entity.Result) entity.Result {
	if r.Duration != nil {
		d := *r.Duration
		r.Duration = &d
	}

	return r
}
