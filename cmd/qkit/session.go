package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/qkit-edu/qkit/internal/browser"
	"github.com/qkit-edu/qkit/internal/storage"
	"github.com/qkit-edu/qkit/pkg/client"
)

// webLoginTimeout bounds the wait for the browser callback.
const webLoginTimeout = 2 * time.Minute

var errNotSignedIn = errors.New("not signed in")

func (a *app) newLoginCmd() *cobra.Command {
	var (
		token string
		web   bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an access token or the browser",
		Long: `Sign in to QKIT. The token is taken from --token, from the browser
sign-in with --web, or from an interactive prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			ctx := cmd.Context()

			tok := strings.TrimSpace(token)
			var err error
			switch {
			case tok != "":
			case web:
				tok, err = a.webLogin(ctx)
			default:
				tok, err = promptToken()
			}
			if err != nil {
				return err
			}

			if err := a.auth.SignIn(ctx, tok); err != nil {
				return fmt.Errorf("sign in: %s", client.ErrorMessage(err, "could not load your profile"))
			}
			s := a.auth.Session()
			if a.jsonOutput {
				return a.printJSON(s)
			}
			fmt.Fprintf(a.out, "Signed in as %s (%s)\n", displayName(s.UserName, s.Email), roleOrDefault(s.Role.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "access token to store")
	cmd.Flags().BoolVar(&web, "web", false, "sign in through the web app in a browser")
	cmd.MarkFlagsMutuallyExclusive("token", "web")
	return cmd
}

func promptToken() (string, error) {
	var tok string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Access token").
				Description("Paste the token from your QKIT account").
				EchoMode(huh.EchoModePassword).
				Value(&tok).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("token is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errors.New("login cancelled")
		}
		return "", fmt.Errorf("prompt: %w", err)
	}
	return strings.TrimSpace(tok), nil
}

func (a *app) webLogin(ctx context.Context) (string, error) {
	cb, err := browser.ListenCallback()
	if err != nil {
		return "", err
	}
	defer cb.Close() //nolint:errcheck

	loginURL := cb.LoginURL(a.cfg.WebURL)
	fmt.Fprintln(a.out, "Opening browser to sign in...")
	if err := browser.Open(loginURL); err != nil {
		fmt.Fprintf(a.out, "Could not open browser. Visit this URL manually:\n  %s\n", loginURL)
	}

	ctx, cancel := context.WithTimeout(ctx, webLoginTimeout)
	defer cancel()
	tok, err := cb.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return "", fmt.Errorf("login timed out: no callback received within %s", webLoginTimeout)
	}
	return tok, err
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear your session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			if storage.Token(a.storage) == "" {
				fmt.Fprintln(a.out, "Already signed out.")
				return nil
			}
			// The local session is gone even when the server call fails.
			if err := a.auth.Logout(cmd.Context()); err != nil {
				a.log.Warn().Err(err).Msg("logout")
			}
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func (a *app) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			if err := a.auth.FetchUserProfile(cmd.Context()); err != nil {
				if !client.IsStatus(err, 401) {
					return fmt.Errorf("whoami: %s", client.ErrorMessage(err, "could not load your profile"))
				}
			}
			if !a.auth.IsLoggedIn() {
				printSignedOut(a.out)
				return errNotSignedIn
			}
			s := a.auth.Session()
			if a.jsonOutput {
				return a.printJSON(s)
			}
			fmt.Fprintf(a.out, "%s\n", displayName(s.UserName, s.Email))
			fmt.Fprintf(a.out, "  email   %s\n", s.Email)
			fmt.Fprintf(a.out, "  role    %s\n", roleOrDefault(s.Role.Name))
			fmt.Fprintf(a.out, "  avatar  %s\n", s.Avatar)
			return nil
		},
	}
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if email != "" {
		return email
	}
	return "unknown"
}

func roleOrDefault(role string) string {
	if role == "" {
		return "no role"
	}
	return role
}
