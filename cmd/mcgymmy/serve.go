// cmd/mcgymmy/serve.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mcgymmy/internal/app"
	"mcgymmy/internal/server"
)

func newServeCmd(openApp func(context.Context) (*app.App, error)) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 監聽 SIGINT/SIGTERM，結束前保存狀態
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.Config.Server.Addr
			}

			// persist：每次成功變更後將快照寫入儲存後端
			persist := func() error { return a.Save(context.Background()) }
			s := server.NewServer(a.Model, persist, a.Logger)
			srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			a.Logger.Info("mcgymmy server running", "addr", addr)

			select {
			case err = <-errCh:
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err = srv.Shutdown(shutdownCtx)
			}
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			return errors.Join(err, a.Close(context.Background()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
