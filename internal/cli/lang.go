package cli

import (
	"github.com/spf13/cobra"

	"userdir-cli/internal/locale"
)

func newLangCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or switch the language sent as Accept-Language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd, app, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer rt.Close()

			if len(args) == 1 {
				if err := rt.Locale.Set(args[0]); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"lang": rt.Locale.Current(), "name": rt.T(locale.MsgLanguage)},
				"meta": map[string]any{"supported": locale.Supported()},
			})
		},
	}
}
