// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"fmt"
	"testing"

	"github.com/absmach/formatters/internal/server"
	"github.com/stretchr/testify/assert"
)

func TestParseServerConfig(t *testing.T) {
	cases := []struct {
		desc           string
		config         *server.Config
		expectedConfig *server.Config
		options        []Options
		err            bool
	}{
		{
			desc:   "parsing server config",
			config: &server.Config{},
			expectedConfig: &server.Config{
				Host:     "localhost",
				Port:     "8080",
				CertFile: "cert",
				KeyFile:  "key",
			},
			options: []Options{
				{
					Environment: map[string]string{
						"HOST":        "localhost",
						"PORT":        "8080",
						"SERVER_CERT": "cert",
						"SERVER_KEY":  "key",
					},
				},
			},
		},
		{
			desc:   "parsing server config with prefix",
			config: &server.Config{},
			expectedConfig: &server.Config{
				Host: "localhost",
				Port: "9030",
			},
			options: []Options{
				{
					Environment: map[string]string{
						"MG_FORMATTERS_HTTP_HOST": "localhost",
						"MG_FORMATTERS_HTTP_PORT": "9030",
					},
					Prefix: "MG_FORMATTERS_HTTP_",
				},
			},
		},
		{
			desc:   "parsing server config with merged options",
			config: &server.Config{},
			expectedConfig: &server.Config{
				Host:     "0.0.0.0",
				Port:     "9031",
				CertFile: "cert",
			},
			options: []Options{
				{
					Environment: map[string]string{
						"MG_FORMATTERS_HTTP_HOST":        "0.0.0.0",
						"MG_FORMATTERS_HTTP_PORT":        "9030",
						"MG_FORMATTERS_HTTP_SERVER_CERT": "cert",
					},
				},
				{
					Environment: map[string]string{
						"MG_FORMATTERS_HTTP_PORT": "9031",
					},
				},
				{
					Prefix: "MG_FORMATTERS_HTTP_",
				},
			},
		},
	}

	for _, tc := range cases {
		err := Parse(tc.config, tc.options...)
		assert.Equal(t, tc.err, err != nil, fmt.Sprintf("%s: unexpected error state %v", tc.desc, err))
		if !tc.err {
			assert.Equal(t, tc.expectedConfig, tc.config, fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.expectedConfig, tc.config))
		}
	}
}

func TestParseRequired(t *testing.T) {
	type config struct {
		Device   string `env:"DEVICE_SERIAL"`
		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	}

	cases := []struct {
		desc     string
		env      map[string]string
		expected config
		err      bool
	}{
		{
			desc:     "required value present",
			env:      map[string]string{"MG_FORMATTERS_DEVICE_SERIAL": "serial"},
			expected: config{Device: "serial", LogLevel: "info"},
		},
		{
			desc: "required value missing",
			env:  map[string]string{},
			err:  true,
		},
	}

	for _, tc := range cases {
		var cfg config
		err := Parse(&cfg, Options{Environment: tc.env}, Options{RequiredIfNoDef: true, Prefix: "MG_FORMATTERS_"})
		assert.Equal(t, tc.err, err != nil, fmt.Sprintf("%s: unexpected error state %v", tc.desc, err))
		if !tc.err {
			assert.Equal(t, tc.expected, cfg, fmt.Sprintf("%s: expected %v got %v", tc.desc, tc.expected, cfg))
		}
	}
}
