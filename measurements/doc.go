// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package measurements maps SenML packs onto the flat device measurement
// list accepted by the dashboard ingestion API.
package measurements
