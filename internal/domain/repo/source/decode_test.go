package source_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo/source"
)

func TestParseTimestamp(t *testing.T) {
	type testCase struct {
		name     string
		raw      string
		valid    bool
		expected time.Time
	}

	cases := []testCase{
		{
			name:     "epoch milliseconds",
			raw:      "1491377495212",
			valid:    true,
			expected: time.Date(2017, 4, 5, 7, 31, 35, 212000000, time.UTC),
		},
		{
			name:     "rfc3339 with fraction",
			raw:      `"2024-11-21T02:57:38.485Z"`,
			valid:    true,
			expected: time.Date(2024, 11, 21, 2, 57, 38, 485000000, time.UTC),
		},
		{
			name:     "rfc3339 with offset",
			raw:      `"2024-11-21T03:57:38+01:00"`,
			valid:    true,
			expected: time.Date(2024, 11, 21, 2, 57, 38, 0, time.UTC),
		},
		{
			name: "missing",
			raw:  "",
		},
		{
			name: "null",
			raw:  "null",
		},
		{
			name: "another format",
			raw:  `"02 Jan 06 15:04 MST"`,
		},
		{
			name: "invalid month",
			raw:  `"2024-13-21T02:57:38.485Z"`,
		},
		{
			name: "float",
			raw:  "1491377495212.5",
		},
		{
			name: "boolean",
			raw:  "true",
		},
	}

	for i := range cases {
		c := cases[i]

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ts, err := source.ParseTimestamp(json.RawMessage(c.raw))
			assert.Equal(t, c.valid, err == nil, err)

			if c.valid {
				assert.Equal(t, c.expected, ts)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	expected := []entity.Event{
		{ID: "A", Type: "APPLICATION_LOG", Host: "12345", State: entity.StateStarted, Timestamp: time.UnixMilli(1000).UTC()},
		{ID: "A", Type: "APPLICATION_LOG", Host: "12345", State: entity.StateFinished, Timestamp: time.UnixMilli(1007).UTC()},
	}

	type testCase struct {
		name  string
		input string
	}

	cases := []testCase{
		{
			name: "one record per line",
			input: `{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"STARTED","timestamp":1000}
{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"FINISHED","timestamp":1007}
`,
		},
		{
			name: "array",
			input: `
  [
	{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"STARTED","timestamp":1000},
	{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"FINISHED","timestamp":1007}
  ]`,
		},
		{
			name:  "concatenated records",
			input: `{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"STARTED","timestamp":1000}{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"FINISHED","timestamp":1007}`,
		},
		{
			name:  "unknown fields are ignored",
			input: `{"id":"A","type":"APPLICATION_LOG","host":"12345","state":"STARTED","timestamp":1000,"extra":1} {"id":"A","type":"APPLICATION_LOG","host":"12345","state":"FINISHED","timestamp":1007}`,
		},
	}

	for i := range cases {
		c := cases[i]

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			events, err := source.Decode(strings.NewReader(c.input))
			require.NoError(t, err)

			assert.Equal(t, expected, events)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	events, err := source.Decode(strings.NewReader(" \n\t"))
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = source.Decode(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"truncated":         `{"id":"A","state":"STARTED","timestamp":1000`,
		"not json":          `id=A state=STARTED`,
		"unknown state":     `{"id":"A","state":"PAUSED","timestamp":1000}`,
		"lower case state":  `{"id":"A","state":"started","timestamp":1000}`,
		"missing id":        `{"state":"STARTED","timestamp":1000}`,
		"missing timestamp": `{"id":"A","state":"STARTED"}`,
		"second is broken":  `{"id":"A","state":"STARTED","timestamp":1000}` + "\n" + `{"id":"A","state":"FINISHED","timestamp":"soon"}`,
		"trailing data":     `[{"id":"A","state":"STARTED","timestamp":1000}] {"id":"B"}`,
		"array of strings":  `["A"]`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			events, err := source.Decode(strings.NewReader(input))
			assert.Error(t, err)
			assert.Nil(t, events, "no partial result")
		})
	}
}
