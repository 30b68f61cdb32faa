// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package uplink decodes LoRaWAN uplink payloads of the soil moisture node
// into the result envelope expected by the network server payload formatter
// hook.
package uplink

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Bytes is a raw frame payload. It decodes from either a JSON array of
// integers in the 0-255 range or a base64 string, and always encodes as an
// array of integers.
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw []byte
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*b = raw
		return nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make(Bytes, len(ints))
	for i, v := range ints {
		if v < 0 || v > 0xff {
			return fmt.Errorf("byte at index %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out

	return nil
}

// Input is the payload formatter input for a single uplink.
type Input struct {
	Bytes Bytes `json:"bytes"`
	FPort int   `json:"fPort,omitempty"`
}

// Result is the payload formatter output. Warnings and Errors are always
// non-nil so they encode as empty JSON arrays.
type Result struct {
	Data     map[string]interface{} `json:"data"`
	Warnings []string               `json:"warnings"`
	Errors   []string               `json:"errors"`
}

func newResult() Result {
	return Result{
		Data:     map[string]interface{}{},
		Warnings: []string{},
		Errors:   []string{},
	}
}
