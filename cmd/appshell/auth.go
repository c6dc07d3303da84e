package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knowcards/appshell/internal/core/domain"
)

// passwordEnv lets scripts avoid putting the password on the command line.
const passwordEnv = "APPSHELL_PASSWORD"

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	FullName string `validate:"max=100"`
}

func (c *credentials) bind(cmd *cobra.Command, withName bool) {
	cmd.Flags().StringVar(&c.Email, "email", "", "account email")
	cmd.Flags().StringVar(&c.Password, "password", "", "account password (or $"+passwordEnv+")")
	if withName {
		cmd.Flags().StringVar(&c.FullName, "full-name", "", "display name")
	}
}

func (c *credentials) validate() error {
	if c.Password == "" {
		c.Password = os.Getenv(passwordEnv)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid credentials input: %w", err)
	}
	return nil
}

func newLoginCmd(flags *globalFlags) *cobra.Command {
	creds := &credentials{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.validate(); err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				res := a.session.Login(cmd.Context(), creds.Email, creds.Password)
				return printAuthResult(cmd, a, res)
			})
		},
	}
	creds.bind(cmd, false)

	return cmd
}

func newRegisterCmd(flags *globalFlags) *cobra.Command {
	creds := &credentials{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.validate(); err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(a *app) error {
				res := a.session.Register(cmd.Context(), creds.Email, creds.Password, creds.FullName)
				return printAuthResult(cmd, a, res)
			})
		},
	}
	creds.bind(cmd, true)

	return cmd
}

type authOutput struct {
	domain.AuthResult
	State string       `json:"state"`
	User  *domain.User `json:"user,omitempty"`
}

func printAuthResult(cmd *cobra.Command, a *app, res domain.AuthResult) error {
	if err := printJSON(cmd, authOutput{
		AuthResult: res,
		State:      a.session.State().String(),
		User:       a.session.CurrentUser(),
	}); err != nil {
		return err
	}
	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the persisted token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.session.Logout(cmd.Context()); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"state": a.session.State().String()})
			})
		},
	}
}

func newWhoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if err := a.require("/profile"); err != nil {
					return err
				}
				return printJSON(cmd, a.session.CurrentUser())
			})
		},
	}
}

// statusOutput describes the session and its collaborators.
type statusOutput struct {
	State         string       `json:"state"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	API           string       `json:"api"`
	Store         string       `json:"store"`
	StoreStatus   string       `json:"store_status"`
	StoreError    string       `json:"store_error,omitempty"`
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session state and token store health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				out := statusOutput{
					State:         a.session.State().String(),
					Authenticated: a.session.IsAuthenticated(),
					User:          a.session.CurrentUser(),
					API:           a.transport.BaseURL(),
					Store:         a.store.Backend,
					StoreStatus:   "ok",
				}
				if err := a.store.Ping(cmd.Context()); err != nil {
					out.StoreStatus = "error"
					out.StoreError = err.Error()
				}
				return printJSON(cmd, out)
			})
		},
	}
}
