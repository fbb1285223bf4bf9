package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/internal/factory"
	"github.com/openshift-assisted/eventlog-analyzer/internal/report"
)

var errBinaryToStdout = errors.New("binary format needs --output")

var reportOpts struct {
	all    bool
	format string
	output string
}

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the stored results flagged with an alert",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(reportOpts.format)
		if err != nil {
			return err
		}

		if format.Binary() && reportOpts.output == "" {
			return fmt.Errorf("%w: %s", errBinaryToStdout, format)
		}

		ctx := common.SetupSignalHandler(cmd.Context())

		store, closeStore, err := factory.CreateResultStore(ctx, conf.Store)
		if err != nil {
			return fmt.Errorf("failed to create result store: %w", err)
		}
		defer common.Close(context.Background(), closeStore)

		rep, err := queryReport(ctx, store, clockwork.NewRealClock(), *conf, reportOpts.all)
		if err != nil {
			return err
		}

		if reportOpts.output == "" {
			return report.Write(cmd.OutOrStdout(), format, rep)
		}

		f, err := os.Create(reportOpts.output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", reportOpts.output, err)
		}

		return writeAndClose(f, format, rep)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportOpts.all, "all", false, "print every stored result, not only alerts")
	reportCmd.Flags().StringVar(&reportOpts.format, "format", string(report.FormatText), "text, json, yaml, xlsx or pdf")
	reportCmd.Flags().StringVarP(&reportOpts.output, "output", "o", "", "output file, stdout if empty")

	rootCmd.AddCommand(reportCmd)
}

func queryReport(ctx context.Context, store repo.ResultStore, clock clockwork.Clock, conf config.Config, all bool) (report.Report, error) {
	queryCtx, cancel := context.WithTimeout(ctx, conf.DefaultTimeout)
	defer cancel()

	var (
		results []entity.Result
		title   string
		err     error
	)

	// alert flags were decided when each row was completed, possibly with another threshold
	if all {
		title = "Events"
		results, err = store.QueryAll(queryCtx)
	} else {
		title = "Alerts"
		results, err = store.QueryAlerts(queryCtx)
	}

	if err != nil {
		return report.Report{}, fmt.Errorf("failed to query results: %w", err)
	}

	return report.New(title, conf.Correlation.Threshold, clock.Now(), results), nil
}

// writeAndClose reports the close error too: xlsx and pdf are flushed on close.
func writeAndClose(out io.WriteCloser, format report.Format, rep report.Report) error {
	err := report.Write(out, format, rep)
	if err != nil {
		_ = out.Close()

		return fmt.Errorf("failed to write report: %w", err)
	}

	err = out.Close()
	if err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}

	return nil
}
