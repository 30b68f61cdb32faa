// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package measurements

// Measurement is a single device reading in the shape expected by the
// ingestion API.
type Measurement struct {
	Device string `json:"device"`
	Field  string `json:"field"`
	Value  Value  `json:"value"`
}

// Request is an inbound webhook request carrying a SenML pack.
type Request struct {
	Body        []byte
	ContentType string
}
