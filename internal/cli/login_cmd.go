package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/zeppex/zeppex/internal/config"
	"github.com/zeppex/zeppex/internal/zepp"
)

func newLoginCmd(app *App) *cobra.Command {
	var token, userID, baseURL string
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store API credentials in the config file",
		Long: `Store API credentials in the config file.

The app token and user ID come from an authenticated Zepp app session.
Credentials are verified against the API before saving unless --no-verify
is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" || userID == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return errors.New("stdin is not a terminal: pass --token and --user-id")
				}
				if err := promptCredentials(&token, &userID); err != nil {
					return err
				}
			}

			cfg := config.Config{
				Token:   strings.TrimSpace(token),
				UserID:  strings.TrimSpace(userID),
				BaseURL: baseURL,
			}

			if !skipVerify {
				if err := verifyCredentials(cmd, app, cfg); err != nil {
					return err
				}
				fmt.Fprintln(app.out(), "Credentials verified.")
			}

			path, err := config.Save(cfg, app.ConfigPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out(), "Saved credentials to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Zepp app token")
	cmd.Flags().StringVar(&userID, "user-id", "", "Zepp user ID")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL override")
	cmd.Flags().BoolVar(&skipVerify, "no-verify", false, "Save without checking the credentials against the API")

	return cmd
}

func promptCredentials(token, userID *string) error {
	notEmpty := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("App token").
			Description("From an authenticated Zepp app session").
			EchoMode(huh.EchoModePassword).
			Validate(notEmpty).
			Value(token),
		huh.NewInput().
			Title("User ID").
			Validate(notEmpty).
			Value(userID),
	))
	return form.Run()
}

func verifyCredentials(cmd *cobra.Command, app *App, cfg config.Config) error {
	if app.Connect == nil {
		return errors.New("credential verification is not available")
	}
	svc, err := app.Connect(cfg)
	if err != nil {
		return err
	}

	// Any authenticated response will do; today's steps is the cheapest call.
	_, err = svc.Steps(cmd.Context(), app.defaultDate(""))
	var authErr *zepp.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("credentials rejected: %s", authErr.Message)
	}
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	return nil
}
