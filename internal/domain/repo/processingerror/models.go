package processingerror

import "time"

// ProcessingError is the dead letter document of one abandoned record.
type ProcessingError struct {
	ProcessingContext ProcessingContext
	Sources           Sources
	Reason            Reason
}

type ProcessingContext struct {
	Component Component
	RunID     string
	Time      time.Time
	Host      string
}

type Component struct {
	Version  string
	Branch   string
	Revision string
}

type Sources struct {
	Main       Source
	Additional []KeyValue
}

// Source is the failed record and its position in the sorted batch.
type Source struct {
	Origin   string
	Position string
	Payload  []byte
}

type KeyValue struct {
	Key   string
	Value []byte
}

type Reason struct {
	Category string
	Error    string
}
