package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
)

var (
	errMissingID        = errors.New("missing id")
	errMissingTimestamp = errors.New("missing timestamp")
)

// record is the serialized form of an event.
// Timestamp is either milliseconds since epoch or an RFC3339 string.
type record struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Host      string          `json:"host"`
	State     string          `json:"state"`
	Timestamp json.RawMessage `json:"timestamp"`
}

func mapToEntity(r record) (entity.Event, error) {
	if r.ID == "" {
		return entity.Event{}, errMissingID
	}

	state, err := entity.ParseState(r.State)
	if err != nil {
		return entity.Event{}, err
	}

	ts, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return entity.Event{}, fmt.Errorf("invalid timestamp for %s: %w", r.ID, err)
	}

	return entity.Event{
		ID:        r.ID,
		Type:      r.Type,
		Host:      r.Host,
		State:     state,
		Timestamp: ts,
	}, nil
}

// ParseTimestamp accepts a JSON number of milliseconds since epoch or a JSON RFC3339 string.
func ParseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, errMissingTimestamp
	}

	if raw[0] == '"' {
		var s string

		err := json.Unmarshal(raw, &s)
		if err != nil {
			return time.Time{}, err
		}

		ret, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
		}

		return ret.UTC(), nil
	}

	var ms int64

	err := json.Unmarshal(raw, &ms)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse epoch milliseconds: %w", err)
	}

	return time.UnixMilli(ms).UTC(), nil
}
