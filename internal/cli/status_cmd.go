package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeppex/zeppex/internal/cli/formatter"
	"github.com/zeppex/zeppex/internal/config"
	"github.com/zeppex/zeppex/internal/zepp"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show credential source and API connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.out()
			fmt.Fprintln(out, formatter.Header("Status"))

			switch app.Config.TokenSource {
			case config.SourceEnv:
				fmt.Fprintf(out, "  token:    %s\n", formatter.StyleGreen.Render("set (environment)"))
			case config.SourceFile:
				fmt.Fprintf(out, "  token:    %s\n", formatter.StyleGreen.Render("set (config file)"))
			default:
				fmt.Fprintf(out, "  token:    %s\n", formatter.StyleRed.Render("not configured"))
			}

			if app.Config.UserID != "" {
				fmt.Fprintf(out, "  user id:  %s\n", app.Config.UserID)
			} else {
				fmt.Fprintf(out, "  user id:  %s\n", formatter.StyleRed.Render("not configured"))
			}

			baseURL := app.Config.BaseURL
			if baseURL == "" {
				baseURL = zepp.DefaultBaseURL
			}
			fmt.Fprintf(out, "  api:      %s\n", formatter.Dim(baseURL))

			if app.Health == nil {
				fmt.Fprintf(out, "  probe:    %s\n", formatter.Dim("skipped (no credentials)"))
				return nil
			}

			// Today's steps is the cheapest authenticated call.
			_, err := app.Health.Steps(cmd.Context(), app.defaultDate(""))
			var authErr *zepp.AuthError
			switch {
			case errors.As(err, &authErr):
				fmt.Fprintf(out, "  probe:    %s\n", formatter.StyleRed.Render("rejected: "+authErr.Message))
			case err != nil:
				fmt.Fprintf(out, "  probe:    %s\n", formatter.StyleYellow.Render("failed: "+err.Error()))
			default:
				fmt.Fprintf(out, "  probe:    %s\n", formatter.StyleGreen.Render("ok"))
			}
			return nil
		},
	}

	return cmd
}
