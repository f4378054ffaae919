// Package cli wires the cobra command tree. Commands talk to the normalizer
// through the HealthService port so tests can substitute fakes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeppex/zeppex/internal/config"
	"github.com/zeppex/zeppex/internal/domain"
	"github.com/zeppex/zeppex/internal/server"
)

const dateLayout = "2006-01-02"

// HealthService is the CLI's view of the normalizer. Implemented by
// *health.Service.
type HealthService interface {
	HeartRate(ctx context.Context, date string) ([]domain.HeartRateSample, error)
	HeartRateRaw(ctx context.Context, date string) ([]int, error)
	Steps(ctx context.Context, date string) (*domain.StepsDayRecord, error)
	Sleep(ctx context.Context, wakeDate string) (*domain.SleepSession, error)
	Stress(ctx context.Context, fromDate, toDate string) ([]domain.StressDayRecord, error)
	TrainingLoad(ctx context.Context, fromDate, toDate string) ([]domain.TrainingLoadRecord, error)
	PHN(ctx context.Context, fromDate, toDate string) ([]domain.PHNRecord, error)
	SportLoad(ctx context.Context, fromDate, toDate string) ([]domain.SportLoadRecord, error)
	VO2Max(ctx context.Context, fromDate, toDate string) ([]json.RawMessage, error)
}

// App aggregates the wired dependencies for the command tree.
type App struct {
	// Health is nil when no credentials are configured; commands that need
	// the API report that instead of failing mid-request.
	Health HealthService

	Config     config.Config
	ConfigPath string

	// Cache backs the serve command's read-through layer; may be nil.
	Cache server.Cache

	Logger *slog.Logger
	Loc    *time.Location

	// Connect builds a health service for freshly entered credentials so
	// login can verify them before saving.
	Connect func(cfg config.Config) (HealthService, error)

	// IsInteractive reports whether stdin is a terminal; login refuses to
	// prompt otherwise.
	IsInteractive func() bool

	Out io.Writer
}

func (app *App) out() io.Writer {
	if app.Out != nil {
		return app.Out
	}
	return os.Stdout
}

func (app *App) loc() *time.Location {
	if app.Loc != nil {
		return app.Loc
	}
	return time.Local
}

// errNotLoggedIn is returned by commands that need API credentials.
var errNotLoggedIn = errors.New("no credentials configured: run `zeppex login` or set ZEPP_TOKEN and ZEPP_USER_ID")

func (app *App) requireHealth() (HealthService, error) {
	if app.Health == nil {
		return nil, errNotLoggedIn
	}
	return app.Health, nil
}

// NewRootCmd builds the zeppex command tree.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zeppex",
		Short:         "Pull, inspect and export Zepp/Amazfit health data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newPullCmd(app),
		newExportCmd(app),
		newLoginCmd(app),
		newStatusCmd(app),
		newServeCmd(app),
	)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
