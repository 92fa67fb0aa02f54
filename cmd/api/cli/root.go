// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cli holds the cobra commands of the api binary.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dishhub/internal/platform/config"
	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/logging"
)

// NewRootCommand returns the dishhub root command. Without a sub-command it
// behaves like "serve".
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dishhub",
		Short:         "DishHub catalog API",
		Long:          "DishHub serves a catalog of dishes with tags, images and comments.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       constants.AppVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	return cmd
}

// bootstrap loads the configuration and builds the root logger shared by
// every command.
func bootstrap() (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	log, closer := logging.New(cfg)
	slog.SetDefault(log)

	log.Debug("debug_logging_enabled")
	return cfg, log, closer, nil
}
