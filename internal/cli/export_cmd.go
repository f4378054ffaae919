package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeppex/zeppex/internal/domain"
	"github.com/zeppex/zeppex/internal/export"
)

// exportBundle is everything one export run fetched, keyed by date.
type exportBundle struct {
	HeartRate map[string][]domain.HeartRateSample `json:"heart_rate"`
	Steps     map[string]*domain.StepsDayRecord   `json:"steps"`
	Sleep     map[string]*domain.SleepSession     `json:"sleep"`
	Stress    []domain.StressDayRecord            `json:"stress"`
}

func newExportCmd(app *App) *cobra.Command {
	var from, to, format, outPath, sourceName string
	var tzOffset int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a date range as csv, json or apple-health XML",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			from, to, err = app.resolveRange(from, to)
			if err != nil {
				return err
			}
			dates, err := dateRange(from, to)
			if err != nil {
				return err
			}

			bundle := exportBundle{
				HeartRate: make(map[string][]domain.HeartRateSample),
				Steps:     make(map[string]*domain.StepsDayRecord),
				Sleep:     make(map[string]*domain.SleepSession),
			}

			ctx := cmd.Context()
			for _, date := range dates {
				if samples, err := svc.HeartRate(ctx, date); err != nil {
					return err
				} else if len(samples) > 0 {
					bundle.HeartRate[date] = samples
				}
				if steps, err := svc.Steps(ctx, date); err != nil {
					return err
				} else if steps != nil {
					bundle.Steps[date] = steps
				}
				if sleep, err := svc.Sleep(ctx, date); err != nil {
					return err
				} else if sleep != nil {
					bundle.Sleep[date] = sleep
				}
			}
			if bundle.Stress, err = svc.Stress(ctx, from, to); err != nil {
				return err
			}

			w, closer, err := openOutput(app, outPath)
			if err != nil {
				return err
			}
			defer closer()

			switch format {
			case "csv":
				return writeCSVBundle(w, dates, bundle, app.loc())
			case "json":
				return printJSON(w, bundle)
			case "apple-health":
				if !cmd.Flags().Changed("tz-offset") {
					tzOffset = localOffsetHours(app.loc())
				}
				doc, counts, err := export.BuildHealthData(bundle.HeartRate, bundle.Steps, bundle.Sleep, export.Options{
					SourceName:    sourceName,
					TZOffsetHours: tzOffset,
				})
				if err != nil {
					return err
				}
				if err := export.WriteHealthXML(w, doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d heart rate, %d steps, %d sleep records\n",
					counts.HeartRate, counts.Steps, counts.Sleep)
				return nil
			default:
				return fmt.Errorf("unknown format %q, want csv, json or apple-health", format)
			}
		},
	}

	rangeFlags(cmd, &from, &to)
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, json or apple-health")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&sourceName, "source", "", "Apple Health source name")
	cmd.Flags().IntVar(&tzOffset, "tz-offset", 0, "Apple Health UTC offset in hours (default local)")

	return cmd
}

func writeCSVBundle(w io.Writer, dates []string, bundle exportBundle, loc *time.Location) error {
	var rows []export.Row
	for _, date := range dates {
		rows = append(rows, export.HeartRateRows(date, bundle.HeartRate[date])...)
		rows = append(rows, export.StepsRows(bundle.Steps[date])...)
		rows = append(rows, export.SleepRows(bundle.Sleep[date])...)
	}
	rows = append(rows, export.StressRows(bundle.Stress, loc)...)
	return export.WriteCSV(w, rows)
}

func openOutput(app *App, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return app.out(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func localOffsetHours(loc *time.Location) int {
	_, offset := time.Now().In(loc).Zone()
	return offset / 3600
}
