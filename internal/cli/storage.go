package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

func newStorageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "storage [key]",
		Short: "List stored keys with their raw values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			if len(args) == 1 {
				raw, ok := rt.Store.GetRaw(args[0])
				if !ok {
					return writeErr(cmd, errNotFound("key", args[0]))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"key": args[0], "value": raw}})
			}

			keys, err := rt.Store.Keys()
			if err != nil {
				return writeErr(cmd, err)
			}
			sort.Strings(keys)
			out := make([]map[string]any, 0, len(keys))
			for _, k := range keys {
				raw, _ := rt.Store.GetRaw(k)
				out = append(out, map[string]any{"key": k, "value": raw})
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"backend": rt.Config.Storage.Backend, "dir": rt.Config.Storage.Dir, "ephemeral": app.Ephemeral},
			})
		},
	}
}
