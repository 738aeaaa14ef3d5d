package cli

import (
	"github.com/spf13/cobra"

	core "userdir-cli/internal/app"
	"userdir-cli/internal/pages"
	"userdir-cli/internal/route"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve a path the way the address bar does and show what that page displays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			c := rt.Router.Start(args[0])
			data := map[string]any{
				"path":    c.Path,
				"matched": c.Matched,
			}
			if c.Matched {
				data["route"] = c.Route.Kind.String()
				switch c.Route.Kind {
				case route.UserDetail:
					data["userId"] = c.Route.UserID
				case route.Activate:
					data["token"] = c.Route.Token
				}
				data["view"] = openView(cmd, rt, c)
			}
			return writeOut(cmd, app, map[string]any{"data": data, "meta": map[string]any{"links": rt.Nav.Links()}})
		},
	}
}

// openView mounts the page for c once and returns what it shows.
func openView(cmd *cobra.Command, rt *core.App, c route.Change) map[string]any {
	ctx := cmd.Context()
	switch c.Route.Kind {
	case route.Users:
		f := rt.Directory()
		defer f.Unmount()
		if err := f.Mount(ctx); err != nil {
			return map[string]any{"error": formErr(nil, err).Error()}
		}
		snap := f.Snapshot()
		return map[string]any{"users": snap.Result.Items, "page": pageMeta(snap)}
	case route.UserDetail:
		p := rt.Profile(c.Route.UserID)
		p.Mount(ctx)
		st, u, msg := p.State()
		if st == pages.StatusSuccess {
			return map[string]any{"user": u}
		}
		return map[string]any{"error": msg}
	case route.Activate:
		a := rt.Activation(c.Route.Token)
		a.Mount(ctx)
		st, msg := a.State()
		return map[string]any{"activated": st == pages.StatusSuccess, "message": msg}
	case route.Login, route.SignUp:
		return map[string]any{"form": c.Route.Kind.String()}
	}
	return map[string]any{}
}

func newLinksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "Show the navigation links for the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()
			return writeOut(cmd, app, map[string]any{"data": rt.Nav.Links()})
		},
	}
}
