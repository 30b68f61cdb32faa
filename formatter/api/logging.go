// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/uplink"
)

var _ formatter.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    formatter.Service
}

// LoggingMiddleware adds logging facilities to the core service.
func LoggingMiddleware(svc formatter.Service, logger *slog.Logger) formatter.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) MapSenML(ctx context.Context, req measurements.Request) (ms []measurements.Measurement, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("request",
				slog.String("content_type", req.ContentType),
				slog.Int("size", len(req.Body)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Map SenML failed", args...)
			return
		}
		args = append(args, slog.Int("measurements", len(ms)))
		lm.logger.Info("Map SenML completed successfully", args...)
	}(time.Now())

	return lm.svc.MapSenML(ctx, req)
}

func (lm *loggingMiddleware) DecodeUplink(ctx context.Context, in uplink.Input) (res uplink.Result, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("uplink",
				slog.Int("f_port", in.FPort),
				slog.Int("size", len(in.Bytes)),
			),
		}
		switch {
		case err != nil:
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Decode uplink failed", args...)
		case len(res.Errors) > 0:
			args = append(args, slog.Any("errors", res.Errors))
			lm.logger.Warn("Decode uplink completed with errors", args...)
		case len(res.Warnings) > 0:
			args = append(args, slog.Any("warnings", res.Warnings))
			lm.logger.Warn("Decode uplink completed with warnings", args...)
		default:
			lm.logger.Info("Decode uplink completed successfully", args...)
		}
	}(time.Now())

	return lm.svc.DecodeUplink(ctx, in)
}
