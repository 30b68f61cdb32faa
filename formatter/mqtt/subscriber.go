// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mqtt feeds uplinks received from a LoRaWAN network server MQTT
// integration through the payload formatter.
package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/pkg/errors"
	"github.com/absmach/formatters/uplink"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// DevicePlaceholder is replaced by the TTN device ID in the output topic.
const DevicePlaceholder = "{device}"

var (
	errSubscribeTimeout = errors.New("timeout while subscribing to MQTT broker")
	errPublishTimeout   = errors.New("timeout while publishing to MQTT broker")
)

// Subscriber represents the MQTT uplink subscriber.
type Subscriber interface {
	// Subscribe subscribes to the given topic and decodes every uplink
	// received on it.
	Subscribe(topic string) error
}

type subscriber struct {
	svc      formatter.Service
	client   paho.Client
	timeout  time.Duration
	outTopic string
	logger   *slog.Logger
}

// NewSubscriber returns new MQTT subscriber instance. Decoded uplinks are
// published to outTopic unless it is empty.
func NewSubscriber(svc formatter.Service, client paho.Client, timeout time.Duration, outTopic string, logger *slog.Logger) Subscriber {
	return subscriber{
		svc:      svc,
		client:   client,
		timeout:  timeout,
		outTopic: outTopic,
		logger:   logger,
	}
}

func (s subscriber) Subscribe(topic string) error {
	token := s.client.Subscribe(topic, 0, s.handleMsg)
	if !token.WaitTimeout(s.timeout) {
		return errSubscribeTimeout
	}

	return token.Error()
}

// handleMsg triggered when new message is received on the MQTT broker.
func (s subscriber) handleMsg(_ paho.Client, msg paho.Message) {
	var m Message
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		s.logger.Warn("Failed to unmarshal uplink message", slog.String("topic", msg.Topic()), slog.Any("error", err))
		return
	}

	in := uplink.Input{
		Bytes: m.UplinkMessage.FrmPayload,
		FPort: m.UplinkMessage.FPort,
	}
	res, err := s.svc.DecodeUplink(context.Background(), in)
	if err != nil {
		s.logger.Warn("Failed to decode uplink", slog.String("device_id", m.EndDeviceIDs.DeviceID), slog.Any("error", err))
		return
	}

	if s.outTopic == "" {
		return
	}

	payload, err := json.Marshal(Decoded{
		DeviceID:      m.EndDeviceIDs.DeviceID,
		ApplicationID: m.EndDeviceIDs.ApplicationIDs.ApplicationID,
		DevEUI:        m.EndDeviceIDs.DevEUI,
		FPort:         m.UplinkMessage.FPort,
		ReceivedAt:    m.UplinkMessage.ReceivedAt,
		Result:        res,
	})
	if err != nil {
		s.logger.Error("Failed to marshal decoded uplink", slog.Any("error", err))
		return
	}

	topic := strings.ReplaceAll(s.outTopic, DevicePlaceholder, m.EndDeviceIDs.DeviceID)
	token := s.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(s.timeout) {
		s.logger.Error("Failed to publish decoded uplink", slog.String("topic", topic), slog.Any("error", errPublishTimeout))
		return
	}
	if err := token.Error(); err != nil {
		s.logger.Error("Failed to publish decoded uplink", slog.String("topic", topic), slog.Any("error", err))
	}
}
