package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"userdir-cli/internal/directory"
	"userdir-cli/internal/model"
	"userdir-cli/internal/pages"
)

func pageMeta(snap directory.Snapshot) map[string]any {
	meta := map[string]any{
		"page":        snap.CurrentPage,
		"hasNext":     snap.HasNext,
		"hasPrevious": snap.HasPrevious,
	}
	if snap.Result != nil {
		meta["size"] = snap.Result.Size
		meta["totalPages"] = snap.Result.TotalPages
	}
	return meta
}

func newUsersCmd(app *App) *cobra.Command {
	var page int
	var all bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List active users one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 0 {
				return writeErr(cmd, fmt.Errorf("invalid --page %d", page))
			}
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			ctx := cmd.Context()
			f := rt.Directory()
			defer f.Unmount()
			if err := f.Mount(ctx); err != nil {
				return writeErr(cmd, formErr(nil, err))
			}

			if all {
				var users []model.UserSummary
				for {
					users = append(users, f.Snapshot().Result.Items...)
					moved, err := f.Next(ctx)
					if err != nil {
						return writeErr(cmd, formErr(nil, err))
					}
					if !moved {
						break
					}
				}
				if users == nil {
					users = []model.UserSummary{}
				}
				snap := f.Snapshot()
				return writeOut(cmd, app, map[string]any{
					"data": users,
					"meta": map[string]any{"totalPages": snap.Result.TotalPages, "count": len(users)},
				})
			}

			if page > 0 {
				if err := f.FetchPage(ctx, page); err != nil {
					if errors.Is(err, directory.ErrPageOutOfRange) {
						return writeErr(cmd, fmt.Errorf("page %d out of range (totalPages=%d)", page, f.Snapshot().Result.TotalPages))
					}
					return writeErr(cmd, formErr(nil, err))
				}
			}
			snap := f.Snapshot()
			var hints []string
			if snap.HasNext {
				hints = append(hints, fmt.Sprintf("userdir users --page %d", snap.CurrentPage+1))
			}
			out := map[string]any{"data": snap.Result.Items, "meta": pageMeta(snap)}
			if len(hints) > 0 {
				out["_hints"] = hints
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Page index (0-based)")
	cmd.Flags().BoolVar(&all, "all", false, "Walk every page")
	return cmd
}

func newUserCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "user <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 0 {
				return writeErr(cmd, fmt.Errorf("invalid user id: %q", args[0]))
			}
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			p := rt.Profile(id)
			p.Mount(cmd.Context())
			st, u, msg := p.State()
			switch st {
			case pages.StatusSuccess:
				return writeOut(cmd, app, map[string]any{"data": u})
			case pages.StatusNotFound:
				if msg == "" {
					return writeErr(cmd, errNotFound("user", args[0]))
				}
			}
			return writeErr(cmd, errors.New(msg))
		},
	}
}
