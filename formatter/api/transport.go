// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/absmach/formatters"
	"github.com/absmach/formatters/formatter"
	"github.com/absmach/formatters/internal/api"
	"github.com/absmach/formatters/measurements"
	"github.com/absmach/formatters/pkg/apiutil"
	"github.com/absmach/formatters/pkg/errors"
	"github.com/absmach/formatters/uplink"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	svcName  = "formatters"
	ctJSON   = "application/json"
	maxBytes = 1 << 20
)

var senMLTypes = map[string]bool{
	"":                     true,
	ctJSON:                 true,
	measurements.SenMLJSON: true,
	measurements.SenMLCBOR: true,
}

// MakeHandler returns a HTTP handler for API endpoints.
func MakeHandler(svc formatter.Service, logger *slog.Logger, instanceID string) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	r := chi.NewRouter()

	r.Post("/senml", otelhttp.NewHandler(kithttp.NewServer(
		mapSenMLEndpoint(svc),
		decodeMapSenML,
		api.EncodeResponse,
		opts...,
	), "map_senml").ServeHTTP)

	r.Post("/uplink", otelhttp.NewHandler(kithttp.NewServer(
		decodeUplinkEndpoint(svc),
		decodeDecodeUplink,
		api.EncodeResponse,
		opts...,
	), "decode_uplink").ServeHTTP)

	r.Get("/health", formatters.Health(svcName, instanceID))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func decodeMapSenML(_ context.Context, r *http.Request) (interface{}, error) {
	ct := r.Header.Get("Content-Type")
	if !senMLTypes[mediaType(ct)] {
		return nil, errors.Wrap(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType)
	}

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, errors.Wrap(apiutil.ErrMalformedRequestBody, err))
	}

	req := mapSenMLReq{
		req: measurements.Request{
			Body:        body,
			ContentType: ct,
		},
	}

	return req, nil
}

func decodeDecodeUplink(_ context.Context, r *http.Request) (interface{}, error) {
	if mt := mediaType(r.Header.Get("Content-Type")); mt != "" && mt != ctJSON {
		return nil, errors.Wrap(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType)
	}

	defer r.Body.Close()
	var in uplink.Input
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBytes)).Decode(&in); err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, errors.Wrap(apiutil.ErrMalformedRequestBody, err))
	}

	return decodeUplinkReq{in: in}, nil
}

// mediaType strips parameters from a Content-Type header value. Values
// that fail to parse are returned unchanged so they are rejected.
func mediaType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}
