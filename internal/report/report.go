package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
)

var ErrUnknownFormat = errors.New("unknown report format")

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Binary is true for formats that should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX || f == FormatPDF
}

// Row is the printable form of a result.
type Row struct {
	ID         string   `json:"id" yaml:"id"`
	Type       string   `json:"type" yaml:"type"`
	Host       string   `json:"host" yaml:"host"`
	Duration   string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	DurationMs *float64 `json:"durationMs,omitempty" yaml:"durationMs,omitempty"`
	Alert      bool     `json:"alert" yaml:"alert"`
}

type Report struct {
	Title string `json:"title" yaml:"title"`
	// ConfiguredThreshold is the threshold of the reporting configuration.
	// Stored alerts were decided with the threshold in force when each row was completed.
	ConfiguredThreshold string    `json:"configuredThreshold" yaml:"configuredThreshold"`
	Generated           time.Time `json:"generated" yaml:"generated"`
	Rows                []Row     `json:"rows" yaml:"rows"`
}

func New(title string, threshold time.Duration, generated time.Time, results []entity.Result) Report {
	rows := make([]Row, 0, len(results))

	for _, result := range results {
		rows = append(rows, newRow(result))
	}

	return Report{
		Title:               title,
		ConfiguredThreshold: threshold.String(),
		Generated:           generated.UTC(),
		Rows:                rows,
	}
}

func newRow(result entity.Result) Row {
	ret := Row{
		ID:    result.ID,
		Type:  result.Type,
		Host:  result.Host,
		Alert: result.Alert,
	}

	if result.Duration != nil {
		ms := float64(*result.Duration) / float64(time.Millisecond)

		ret.Duration = result.Duration.String()
		ret.DurationMs = &ms
	}

	return ret
}

func Write(w io.Writer, format Format, report Report) error {
	switch format {
	case FormatText:
		return writeText(w, report)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(report)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		err := encoder.Encode(report)
		if err != nil {
			return err
		}

		return encoder.Close()
	case FormatXLSX:
		return writeXLSX(w, report)
	case FormatPDF:
		return writePDF(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
