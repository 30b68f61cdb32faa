// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/pkg/apiutil"
	"github.com/absmach/formatters/uplink"
)

type mapSenMLReq struct {
	req measurements.Request
}

func (req mapSenMLReq) validate() error {
	if len(req.req.Body) == 0 {
		return apiutil.ErrEmptyMessage
	}

	return nil
}

type decodeUplinkReq struct {
	in uplink.Input
}
