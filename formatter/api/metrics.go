// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"time"

	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/uplink"
	"github.com/go-kit/kit/metrics"
)

var _ formatter.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     formatter.Service
}

// MetricsMiddleware instruments core service by tracking request count and latency.
func MetricsMiddleware(svc formatter.Service, counter metrics.Counter, latency metrics.Histogram) formatter.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) MapSenML(ctx context.Context, req measurements.Request) ([]measurements.Measurement, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "map_senml").Add(1)
		mm.latency.With("method", "map_senml").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.MapSenML(ctx, req)
}

func (mm *metricsMiddleware) DecodeUplink(ctx context.Context, in uplink.Input) (uplink.Result, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "decode_uplink").Add(1)
		mm.latency.With("method", "decode_uplink").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.DecodeUplink(ctx, in)
}
