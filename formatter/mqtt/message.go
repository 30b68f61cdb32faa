// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mqtt

import "github.com/absmach/formatters/uplink"

// ApplicationIDs identifies a TTN application.
type ApplicationIDs struct {
	ApplicationID string `json:"application_id"`
}

// EndDeviceIDs identifies a TTN end device.
type EndDeviceIDs struct {
	DeviceID       string         `json:"device_id"`
	ApplicationIDs ApplicationIDs `json:"application_ids"`
	DevEUI         string         `json:"dev_eui,omitempty"`
	JoinEUI        string         `json:"join_eui,omitempty"`
	DevAddr        string         `json:"dev_addr,omitempty"`
}

// GatewayIDs identifies the receiving gateway.
type GatewayIDs struct {
	GatewayID string `json:"gateway_id"`
	EUI       string `json:"eui,omitempty"`
}

// RxMetadata gateway reception parameters.
type RxMetadata struct {
	GatewayIDs GatewayIDs `json:"gateway_ids"`
	RSSI       float64    `json:"rssi,omitempty"`
	SNR        float64    `json:"snr,omitempty"`
}

// UplinkMessage carries the frame payload as received by the network server.
type UplinkMessage struct {
	FPort      int          `json:"f_port"`
	FCnt       uint32       `json:"f_cnt"`
	FrmPayload uplink.Bytes `json:"frm_payload"`
	RxMetadata []RxMetadata `json:"rx_metadata,omitempty"`
	ReceivedAt string       `json:"received_at,omitempty"`
}

// Message TTN v3 uplink event (https://www.thethingsindustries.com/docs/the-things-stack/concepts/data-formats/#uplink-messages).
type Message struct {
	EndDeviceIDs   EndDeviceIDs  `json:"end_device_ids"`
	CorrelationIDs []string      `json:"correlation_ids,omitempty"`
	ReceivedAt     string        `json:"received_at,omitempty"`
	UplinkMessage  UplinkMessage `json:"uplink_message"`
}

// Decoded is published for every decoded uplink.
type Decoded struct {
	DeviceID      string `json:"device_id"`
	ApplicationID string `json:"application_id"`
	DevEUI        string `json:"dev_eui,omitempty"`
	FPort         int    `json:"f_port"`
	ReceivedAt    string `json:"received_at,omitempty"`
	uplink.Result
}
