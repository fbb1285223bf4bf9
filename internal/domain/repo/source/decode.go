package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
)

var errTrailingData = errors.New("unexpected data after the array of records")

// Decode reads every event of r. r holds either a JSON array of records
// or a stream of records (one per line or simply concatenated).
// A single malformed record fails the whole decode.
func Decode(r io.Reader) ([]entity.Event, error) {
	reader := bufio.NewReader(r)

	first, err := peekNonSpace(reader)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(reader)

	if first == '[' {
		var records []record

		err = decoder.Decode(&records)
		if err != nil {
			return nil, fmt.Errorf("failed to decode array of records: %w", err)
		}

		_, err = decoder.Token()
		if !errors.Is(err, io.EOF) {
			return nil, errTrailingData
		}

		return mapAll(records)
	}

	var records []record

	for {
		var rec record

		err = decoder.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", len(records), err)
		}

		records = append(records, rec)
	}

	return mapAll(records)
}

func mapAll(records []record) ([]entity.Event, error) {
	ret := make([]entity.Event, 0, len(records))

	for i, rec := range records {
		event, err := mapToEntity(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}

		ret = append(ret, event)
	}

	return ret, nil
}

func peekNonSpace(reader *bufio.Reader) (rune, error) {
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return 0, err
		}

		if unicode.IsSpace(r) {
			continue
		}

		err = reader.UnreadRune()
		if err != nil {
			return 0, err
		}

		return r, nil
	}
}
