// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"github.com/caarlos0/env/v10"
)

type Options struct {
	// Environment keys and values that will be accessible for the service
	Environment map[string]string

	// RequiredIfNoDef automatically sets all env as required if they do not declare 'envDefault'
	RequiredIfNoDef bool

	// Prefix define a prefix for each key
	Prefix string
}

// Parse fills v from the process environment. Options are merged in order:
// Environment maps are combined with later keys winning, the last non-empty
// Prefix is used and RequiredIfNoDef holds if any option sets it.
func Parse(v interface{}, opts ...Options) error {
	if len(opts) == 0 {
		return env.Parse(v)
	}

	return env.ParseWithOptions(v, merge(opts))
}

func merge(opts []Options) env.Options {
	var merged env.Options
	for _, opt := range opts {
		if opt.Environment != nil {
			if merged.Environment == nil {
				merged.Environment = map[string]string{}
			}
			for k, v := range opt.Environment {
				merged.Environment[k] = v
			}
		}
		if opt.Prefix != "" {
			merged.Prefix = opt.Prefix
		}
		merged.RequiredIfNoDef = merged.RequiredIfNoDef || opt.RequiredIfNoDef
	}

	return merged
}
