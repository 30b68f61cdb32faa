// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/pkg/apiutil"
	"github.com/absmach/formatters/pkg/errors"
	"github.com/go-kit/kit/endpoint"
)

func mapSenMLEndpoint(svc formatter.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(mapSenMLReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		ms, err := svc.MapSenML(ctx, req.req)
		if err != nil {
			return nil, err
		}
		if ms == nil {
			ms = []measurements.Measurement{}
		}

		return mapSenMLRes(ms), nil
	}
}

func decodeUplinkEndpoint(svc formatter.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(decodeUplinkReq)

		res, err := svc.DecodeUplink(ctx, req.in)
		if err != nil {
			return nil, err
		}

		return decodeUplinkRes(res), nil
	}
}
