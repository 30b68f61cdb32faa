// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package uplink

import (
	"fmt"

	"github.com/absmach/formatters/pkg/errors"
)

const (
	// Field is the data key the reading is published under. The node
	// measures soil moisture, but the dashboard is provisioned with a
	// "temperature" field.
	Field = "temperature"

	// MaxPercent is the largest valid moisture reading.
	MaxPercent = 100
)

var (
	// ErrEmptyPayload indicates an uplink without the moisture byte.
	ErrEmptyPayload = errors.New("uplink payload is empty")

	// ErrOutOfRange indicates a moisture byte above MaxPercent.
	ErrOutOfRange = errors.New("moisture percentage out of range")
)

// Decode reads the moisture percentage from the first payload byte.
//
// An empty payload yields no data and a single error. A reading above
// MaxPercent is still reported and comes with a single warning. Bytes past
// the first one are ignored.
func Decode(in Input) Result {
	res := newResult()
	if len(in.Bytes) == 0 {
		res.Errors = append(res.Errors, ErrEmptyPayload.Error())
		return res
	}

	moisture := int(in.Bytes[0])
	if moisture > MaxPercent {
		err := errors.Wrap(ErrOutOfRange, fmt.Errorf("got %d, expected 0-%d", moisture, MaxPercent))
		res.Warnings = append(res.Warnings, err.Error())
	}
	res.Data[Field] = moisture

	return res
}
