// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains formatters main function to start the formatters service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/formatter/api"
	"github.com/absmach/formatters/formatter/mqtt"
	"github.com/absmach/formatters/internal"
	"github.com/absmach/formatters/internal/env"
	"github.com/absmach/formatters/internal/server"
	httpserver "github.com/absmach/formatters/internal/server/http"
	mglog "github.com/absmach/formatters/logger"
	"github.com/absmach/formatters/pkg/uuid"
	mqttpaho "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/sync/errgroup"
)

const (
	svcName        = "formatters"
	envPrefixHTTP  = "MG_FORMATTERS_HTTP_"
	defSvcHTTPPort = "9030"
)

type config struct {
	LogLevel        string        `env:"MG_FORMATTERS_LOG_LEVEL"         envDefault:"info"`
	DeviceSerial    string        `env:"MG_FORMATTERS_DEVICE_SERIAL"     envDefault:""`
	InstanceID      string        `env:"MG_FORMATTERS_INSTANCE_ID"       envDefault:""`
	MQTTURL         string        `env:"MG_FORMATTERS_MQTT_URL"          envDefault:""`
	MQTTUser        string        `env:"MG_FORMATTERS_MQTT_USER"         envDefault:""`
	MQTTPass        string        `env:"MG_FORMATTERS_MQTT_PASS"         envDefault:""`
	MQTTTopic       string        `env:"MG_FORMATTERS_MQTT_TOPIC"        envDefault:"v3/+/devices/+/up"`
	MQTTOutputTopic string        `env:"MG_FORMATTERS_MQTT_OUTPUT_TOPIC" envDefault:""`
	MQTTTimeout     time.Duration `env:"MG_FORMATTERS_MQTT_TIMEOUT"      envDefault:"30s"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := mglog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err.Error())
	}

	var exitCode int
	defer mglog.ExitWithError(&exitCode)

	if cfg.InstanceID == "" {
		id, err := uuid.New().ID()
		if err != nil {
			logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
			exitCode = 1
			return
		}
		cfg.InstanceID = id
	}

	if cfg.DeviceSerial == "" {
		logger.Warn("MG_FORMATTERS_DEVICE_SERIAL is not set, SenML requests will be rejected")
	}

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.Parse(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		exitCode = 1
		return
	}

	svc := newService(cfg.DeviceSerial, logger)

	if cfg.MQTTURL != "" {
		mqttConn, err := connectToMQTTBroker(cfg.MQTTURL, cfg.MQTTUser, cfg.MQTTPass, cfg.MQTTTimeout, logger)
		if err != nil {
			logger.Error(err.Error())
			exitCode = 1
			return
		}
		defer mqttConn.Disconnect(uint(cfg.MQTTTimeout.Milliseconds()))

		sub := mqtt.NewSubscriber(svc, mqttConn, cfg.MQTTTimeout, cfg.MQTTOutputTopic, logger)
		if err := sub.Subscribe(cfg.MQTTTopic); err != nil {
			logger.Error(fmt.Sprintf("failed to subscribe to uplink topic %s: %s", cfg.MQTTTopic, err))
			exitCode = 1
			return
		}
		logger.Info("Subscribed to uplink topic", slog.String("topic", cfg.MQTTTopic))
	}

	hs := httpserver.New(ctx, cancel, svcName, httpServerConfig, api.MakeHandler(svc, logger, cfg.InstanceID), logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}
}

func newService(device string, logger *slog.Logger) formatter.Service {
	svc := formatter.New(device)
	svc = api.LoggingMiddleware(svc, logger)
	counter, latency := internal.MakeMetrics(svcName, "api")
	svc = api.MetricsMiddleware(svc, counter, latency)

	return svc
}

func connectToMQTTBroker(burl, user, password string, timeout time.Duration, logger *slog.Logger) (mqttpaho.Client, error) {
	opts := mqttpaho.NewClientOptions()
	opts.AddBroker(burl)
	opts.SetUsername(user)
	opts.SetPassword(password)
	opts.SetOnConnectHandler(func(_ mqttpaho.Client) {
		logger.Info("Connected to uplink MQTT broker")
	})
	opts.SetConnectionLostHandler(func(_ mqttpaho.Client, err error) {
		logger.Error(fmt.Sprintf("MQTT connection lost: %s", err))
	})

	client := mqttpaho.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("timeout while connecting to uplink MQTT broker %s", burl)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to uplink MQTT broker: %s", token.Error())
	}

	return client, nil
}
