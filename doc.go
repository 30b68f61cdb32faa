// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package formatters contains the shared HTTP plumbing of the payload
// formatters service: the health endpoint and the response contract used by
// API encoders.
//
// The transformations themselves live in the measurements package (SenML to
// dashboard measurements) and the uplink package (LoRaWAN uplink byte
// decoding). The formatter package wraps both behind a service interface.
package formatters
