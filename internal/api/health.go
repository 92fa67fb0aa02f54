// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/dishhub/internal/platform/constants"
	"github.com/taibuivan/dishhub/internal/platform/respond"
)

// probeTimeout bounds every readiness check.
const probeTimeout = 2 * time.Second

// HealthDependencies are the checks behind /ready. A nil check is skipped.
type HealthDependencies struct {
	CheckDatabase func(context.Context) error
	CheckSessions func(context.Context) error
}

type probe struct {
	name  string
	check func(context.Context) error
}

type probeResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
//
// /health only proves the process is serving. /ready runs every dependency
// check concurrently and answers 503 "degraded" if any of them fails.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	probes := make([]probe, 0, 2)
	for _, candidate := range []probe{
		{name: "postgres", check: deps.CheckDatabase},
		{name: "redis", check: deps.CheckSessions},
	} {
		if candidate.check != nil {
			probes = append(probes, candidate)
		}
	}

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{
			constants.FieldStatus:  "ok",
			constants.FieldApp:     constants.AppName,
			constants.FieldVersion: constants.AppVersion,
		})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := runProbes(request.Context(), probes, logger)

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if !result.OK {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			constants.FieldStatus: status,
			constants.FieldChecks: results,
		}})
	}
	return liveness, readiness
}

// runProbes never fails as a whole; each failure is recorded in its slot.
func runProbes(parent context.Context, probes []probe, logger *slog.Logger) []probeResult {
	ctx, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()

	results := make([]probeResult, len(probes))
	var group errgroup.Group
	for i, p := range probes {
		group.Go(func() error {
			results[i] = probeResult{Name: p.name, OK: true}
			if err := p.check(ctx); err != nil {
				results[i].OK, results[i].Error = false, err.Error()
				logger.WarnContext(ctx, "readiness_check_failed", slog.String("dependency", p.name), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = group.Wait()
	return results
}
