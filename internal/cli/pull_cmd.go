package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeppex/zeppex/internal/cli/formatter"
)

func newPullCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch one data type and print it",
	}

	cmd.AddCommand(
		newPullHeartRateCmd(app),
		newPullStepsCmd(app),
		newPullSleepCmd(app),
		newPullStressCmd(app),
		newPullTrainingLoadCmd(app),
		newPullPHNCmd(app),
		newPullSportLoadCmd(app),
		newPullVO2MaxCmd(app),
	)

	return cmd
}

func newPullHeartRateCmd(app *App) *cobra.Command {
	var date string
	var asJSON, raw bool

	cmd := &cobra.Command{
		Use:   "heart-rate",
		Short: "Minute-by-minute heart rate for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			date = app.defaultDate(date)
			if _, err := parseDate(date); err != nil {
				return err
			}

			if raw {
				values, err := svc.HeartRateRaw(cmd.Context(), date)
				if err != nil {
					return err
				}
				return printJSON(app.out(), values)
			}

			samples, err := svc.HeartRate(cmd.Context(), date)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), samples)
			}
			fmt.Fprintln(app.out(), formatter.HeartRateSummary(date, samples))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to fetch (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the dense per-minute timeline, sentinels included")

	return cmd
}

func newPullStepsCmd(app *App) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Step and activity totals for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			date = app.defaultDate(date)
			if _, err := parseDate(date); err != nil {
				return err
			}

			record, err := svc.Steps(cmd.Context(), date)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), record)
			}
			if record == nil {
				fmt.Fprintf(app.out(), "No step data for %s\n", date)
				return nil
			}
			fmt.Fprintln(app.out(), formatter.Steps(record))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to fetch (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

func newPullSleepCmd(app *App) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Reconciled sleep session for a wake date",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			date = app.defaultDate(date)
			if _, err := parseDate(date); err != nil {
				return err
			}

			session, err := svc.Sleep(cmd.Context(), date)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), session)
			}
			if session == nil {
				fmt.Fprintf(app.out(), "No sleep data for %s\n", date)
				return nil
			}
			fmt.Fprintln(app.out(), formatter.Sleep(session))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Wake date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

// rangeFlags adds --from/--to to a command, defaulting both to today.
func rangeFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "Range start (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(to, "to", "", "Range end (YYYY-MM-DD, default today)")
}

func (app *App) resolveRange(from, to string) (string, string, error) {
	from = app.defaultDate(from)
	to = app.defaultDate(to)
	if _, err := dateRange(from, to); err != nil {
		return "", "", err
	}
	return from, to, nil
}

func newPullStressCmd(app *App) *cobra.Command {
	var from, to string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Daily stress records for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			from, to, err = app.resolveRange(from, to)
			if err != nil {
				return err
			}

			records, err := svc.Stress(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), records)
			}
			if len(records) == 0 {
				fmt.Fprintln(app.out(), "No stress data in range")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintln(app.out(), formatter.Stress(rec, app.loc()))
			}
			return nil
		},
	}

	rangeFlags(cmd, &from, &to)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

func newPullTrainingLoadCmd(app *App) *cobra.Command {
	var from, to string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "training-load",
		Short: "Training load (ATL/CTL/TSB) records",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			from, to, err = app.resolveRange(from, to)
			if err != nil {
				return err
			}

			records, err := svc.TrainingLoad(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), records)
			}
			if len(records) == 0 {
				fmt.Fprintln(app.out(), "No training load data in range")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintln(app.out(), formatter.TrainingLoad(rec, app.loc()))
			}
			return nil
		},
	}

	rangeFlags(cmd, &from, &to)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

func newPullPHNCmd(app *App) *cobra.Command {
	var from, to string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "phn",
		Short: "Daily TRIMP analysis records",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			from, to, err = app.resolveRange(from, to)
			if err != nil {
				return err
			}

			records, err := svc.PHN(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), records)
			}
			if len(records) == 0 {
				fmt.Fprintln(app.out(), "No TRIMP data in range")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintln(app.out(), formatter.PHN(rec, app.loc()))
			}
			return nil
		},
	}

	rangeFlags(cmd, &from, &to)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

func newPullSportLoadCmd(app *App) *cobra.Command {
	var from, to string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sport-load",
		Short: "Daily sport load with the weekly optimal band",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			from, to, err = app.resolveRange(from, to)
			if err != nil {
				return err
			}

			records, err := svc.SportLoad(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(app.out(), records)
			}
			if len(records) == 0 {
				fmt.Fprintln(app.out(), "No sport load data in range")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintln(app.out(), formatter.SportLoad(rec))
			}
			return nil
		},
	}

	rangeFlags(cmd, &from, &to)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

func newPullVO2MaxCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "vo2max",
		Short: "Raw VO2 max items (shape varies by device)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.requireHealth()
			if err != nil {
				return err
			}
			from, to, err = app.resolveRange(from, to)
			if err != nil {
				return err
			}

			items, err := svc.VO2Max(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			return printJSON(app.out(), items)
		},
	}

	rangeFlags(cmd, &from, &to)

	return cmd
}
