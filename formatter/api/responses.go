// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/absmach/formatters"
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/uplink"
)

var (
	_ formatters.Response = (*mapSenMLRes)(nil)
	_ formatters.Response = (*decodeUplinkRes)(nil)
)

type mapSenMLRes []measurements.Measurement

func (res mapSenMLRes) Code() int {
	return http.StatusOK
}

func (res mapSenMLRes) Headers() map[string]string {
	return map[string]string{}
}

func (res mapSenMLRes) Empty() bool {
	return false
}

type decodeUplinkRes uplink.Result

func (res decodeUplinkRes) Code() int {
	return http.StatusOK
}

func (res decodeUplinkRes) Headers() map[string]string {
	return map[string]string{}
}

func (res decodeUplinkRes) Empty() bool {
	return false
}
