// cmd/mcgymmy/root.go

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"mcgymmy/internal/app"
	"mcgymmy/internal/config"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "mcgymmy",
		Short:        "Track food and macro-nutrients with undo/redo",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	// openApp 載入設定並建立 App；呼叫端負責 Close。
	openApp := func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return app.New(ctx, cfg, os.Stderr)
	}

	root.AddCommand(newServeCmd(openApp), newShellCmd(openApp))
	return root
}
