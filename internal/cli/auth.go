package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"userdir-cli/internal/locale"
	"userdir-cli/internal/pages"
)

func newSignUpCmd(app *App) *cobra.Command {
	var username, email, password, repeat string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account (it must be activated before logging in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			if repeat == "" {
				repeat = password
			}
			f := rt.SignUpForm()
			f.SetField(pages.FieldUsername, username)
			f.SetField(pages.FieldEmail, email)
			f.SetField(pages.FieldPassword, password)
			f.SetField(pages.FieldPasswordRepeat, repeat)
			if msg := f.PasswordMismatch(); msg != "" {
				return writeErr(cmd, errors.New(msg))
			}
			if !f.CanSubmit() {
				return writeErr(cmd, errors.New("missing --password"))
			}
			if _, err := f.Submit(cmd.Context()); err != nil {
				return writeErr(cmd, formErr(f.Errors.All(), err))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"username":          username,
					"email":             email,
					"activationPending": true,
					"message":           rt.T(locale.MsgActivationNotice),
				},
				"_hints": []string{"userdir activate <token>"},
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "E-mail")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&repeat, "password-repeat", "", "Password repeat (defaults to --password)")
	return cmd
}

func newActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <token>",
		Short: "Activate an account with the token from the activation e-mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			a := rt.Activation(args[0])
			a.Mount(cmd.Context())
			st, msg := a.State()
			if st != pages.StatusSuccess {
				return writeErr(cmd, errors.New(msg))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"activated": true, "message": msg}})
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			rt.Router.Start("/login")
			f := rt.LoginForm()
			f.SetField(pages.FieldEmail, email)
			f.SetField(pages.FieldPassword, password)
			if !f.CanSubmit() {
				return writeErr(cmd, errors.New("missing --email or --password"))
			}
			if _, err := f.Submit(cmd.Context()); err != nil {
				return writeErr(cmd, formErr(f.Errors.All(), err))
			}
			return writeOut(cmd, app, map[string]any{
				"data": rt.Session.State(),
				"meta": map[string]any{"path": rt.Router.Current().Path, "links": rt.Nav.Links()},
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "E-mail")
	cmd.Flags().StringVar(&password, "password", envOr("USERDIR_PASSWORD", ""), "Password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			if err := rt.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rt.Session.State()})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			return writeOut(cmd, app, map[string]any{
				"data": rt.Session.State(),
				"meta": map[string]any{"links": rt.Nav.Links(), "lang": rt.Locale.Current(), "api": rt.API.BaseURL()},
			})
		},
	}
}
