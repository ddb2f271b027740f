// cmd/mcgymmy/shell.go

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"mcgymmy/internal/app"
	"mcgymmy/internal/shell"
)

func newShellCmd(openApp func(context.Context) (*app.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive command shell on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			sh := shell.New(a.Model, a.Save, cmd.OutOrStdout())
			runErr := sh.Run(ctx, cmd.InOrStdin())
			return errors.Join(runErr, a.Close(context.Background()))
		},
	}
}
