// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the root structured logger.
//
// Output always goes to stdout as JSON. When a log file is configured the
// same stream is duplicated into a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/dishhub/internal/platform/config"
	"github.com/taibuivan/dishhub/internal/platform/constants"
)

// New returns the root logger and a closer for the rotated file (a no-op
// when file logging is disabled).
func New(cfg *config.Config) (*slog.Logger, io.Closer) {
	writers := []io.Writer{os.Stdout}
	var closer io.Closer = nopCloser{}

	if cfg.LogFile != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   cfg.LogCompress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler).With(
		slog.String("app", constants.AppName),
		slog.String("env", cfg.Environment),
	)

	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
