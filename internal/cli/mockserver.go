package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"userdir-cli/internal/logging"
	"userdir-cli/internal/mockapi"
)

func newMockServerCmd(app *App) *cobra.Command {
	var addr string
	var seed int
	var pageSize int

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory backend under /api/1.0 for local experiments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := app.LogLevel
			if level == "" {
				level = "info"
			}
			log, err := logging.New(logging.Options{Level: level})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = log.Sync() }()

			be := mockapi.New(mockapi.WithPageSize(pageSize), mockapi.WithLogger(log))
			be.Seed(seed)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return writeErr(cmd, err)
			}
			srv := &http.Server{Handler: be.Handler(), ReadHeaderTimeout: 5 * time.Second}
			fmt.Fprintf(cmd.ErrOrStderr(), "mock backend listening on http://%s/api/1.0\n", ln.Addr())

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().IntVar(&seed, "seed", 25, "Number of active users to create (userN / userN@mail.com / P4ssword)")
	cmd.Flags().IntVar(&pageSize, "page-size", mockapi.DefaultPageSize, "Default page size")
	return cmd
}
