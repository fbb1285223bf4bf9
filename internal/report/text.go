package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const nullValue = "-"

func writeText(w io.Writer, report Report) error {
	_, err := fmt.Fprintf(w, "%s (configured threshold %s)\n\n", report.Title, report.ConfiguredThreshold)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, err = fmt.Fprintln(tw, "ID\tDURATION\tTYPE\tHOST\tALERT")
	if err != nil {
		return err
	}

	for _, row := range report.Rows {
		duration := row.Duration
		if duration == "" {
			duration = nullValue
		}

		_, err = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", row.ID, duration, orNull(row.Type), orNull(row.Host), row.Alert)
		if err != nil {
			return err
		}
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\n%d row(s)\n", len(report.Rows))

	return err
}

func orNull(s string) string {
	if s == "" {
		return nullValue
	}

	return s
}
