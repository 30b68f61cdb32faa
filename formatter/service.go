// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package formatter exposes the SenML mapper and the uplink decoder as a
// service that transports and middlewares can wrap.
package formatter

import (
	"context"

	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/pkg/errors"
	"github.com/absmach/formatters/uplink"
)

// ErrMissingDevice indicates that no device serial is configured, so SenML
// packs cannot be attributed to a device.
var ErrMissingDevice = errors.New("device serial is not configured")

// Service specifies an API that must be fullfiled by the domain service
// implementation, and all of its decorators (e.g. logging & metrics).
type Service interface {
	// MapSenML converts a SenML webhook request into measurements of the
	// configured device.
	MapSenML(ctx context.Context, req measurements.Request) ([]measurements.Measurement, error)

	// DecodeUplink decodes a single LoRaWAN uplink payload.
	DecodeUplink(ctx context.Context, in uplink.Input) (uplink.Result, error)
}

var _ Service = (*formatterService)(nil)

type formatterService struct {
	device string
}

// New instantiates the formatter service attributing every SenML
// measurement to device.
func New(device string) Service {
	return &formatterService{
		device: device,
	}
}

func (fs *formatterService) MapSenML(_ context.Context, req measurements.Request) ([]measurements.Measurement, error) {
	if fs.device == "" {
		return nil, ErrMissingDevice
	}

	return measurements.Map(fs.device, req)
}

func (fs *formatterService) DecodeUplink(_ context.Context, in uplink.Input) (uplink.Result, error) {
	return uplink.Decode(in), nil
}
