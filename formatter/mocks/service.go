// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/uplink"
	"github.com/stretchr/testify/mock"
)

var _ formatter.Service = (*Service)(nil)

// Service is a testify mock of formatter.Service.
type Service struct {
	mock.Mock
}

func (m *Service) MapSenML(ctx context.Context, req measurements.Request) ([]measurements.Measurement, error) {
	ret := m.Called(ctx, req)

	var res []measurements.Measurement
	if rf, ok := ret.Get(0).(func(context.Context, measurements.Request) []measurements.Measurement); ok {
		res = rf(ctx, req)
	} else if ret.Get(0) != nil {
		res = ret.Get(0).([]measurements.Measurement)
	}

	return res, ret.Error(1)
}

func (m *Service) DecodeUplink(ctx context.Context, in uplink.Input) (uplink.Result, error) {
	ret := m.Called(ctx, in)

	var res uplink.Result
	if rf, ok := ret.Get(0).(func(context.Context, uplink.Input) uplink.Result); ok {
		res = rf(ctx, in)
	} else {
		res = ret.Get(0).(uplink.Result)
	}

	return res, ret.Error(1)
}
