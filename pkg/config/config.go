/*
 * Copyright 2026 Splunkscope Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the splunkscope configuration file. The loaded
// object is immutable for the duration of a discovery run; components
// receive it by reference and never write to it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
)

const (
	defaultPollTimeout = 30 * time.Second
)

var (
	ErrInvalidThreshold = errors.New("invalid health threshold")
	errInvalidTimeout   = errors.New("poll_timeout must be positive")
)

// TopologyConfig carries rendering preferences handed to the topology
// exporter: node colors by poll outcome and the unvisited-node style.
type TopologyConfig struct {
	SuccessColor    string `json:"success_color" yaml:"success_color"`
	PartialColor    string `json:"partial_color" yaml:"partial_color"`
	FailedColor     string `json:"failed_color" yaml:"failed_color"`
	DiscoveredColor string `json:"discovered_color" yaml:"discovered_color"`
}

// Config is the root splunkscope configuration.
type Config struct {
	// PollTimeout bounds every management-API call. A timed-out call
	// is recorded the same way as a failed call.
	PollTimeout models.Duration `json:"poll_timeout" yaml:"poll_timeout"`

	// InsecureSkipVerify disables TLS certificate verification.
	// splunkd ships with a self-signed certificate, so this defaults
	// to true.
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	// HealthChecks maps metric name to its threshold rule. Metrics
	// absent from this map always evaluate Normal.
	HealthChecks map[string]models.ThresholdRule `json:"healthchecks" yaml:"healthchecks"`

	Topology TopologyConfig `json:"topology" yaml:"topology"`

	Logging *logger.Config `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		PollTimeout:        models.Duration(defaultPollTimeout),
		InsecureSkipVerify: true,
		HealthChecks: map[string]models.ThresholdRule{
			"cpu_usage_pct":  {Caution: 80, Warning: 90, Direction: models.DirectionAbove},
			"mem_usage_pct":  {Caution: 80, Warning: 90, Direction: models.DirectionAbove},
			"swap_usage_pct": {Caution: 50, Warning: 80, Direction: models.DirectionAbove},
			"disk_usage_pct": {Caution: 80, Warning: 90, Direction: models.DirectionAbove},
			"uptime_sec":     {Caution: 604800, Warning: 3600, Direction: models.DirectionBelow},
		},
		Topology: TopologyConfig{
			SuccessColor:    "#50FA7B",
			PartialColor:    "#F1FA8C",
			FailedColor:     "#FF5555",
			DiscoveredColor: "#6272A4",
		},
	}
}

// Validate implements the Validator interface.
func (c *Config) Validate() error {
	if c.PollTimeout.Duration() <= 0 {
		return errInvalidTimeout
	}

	for name, rule := range c.HealthChecks {
		switch rule.Direction {
		case models.DirectionAbove, models.DirectionBelow:
		default:
			return fmt.Errorf("%w: metric %q has direction %q", ErrInvalidThreshold, name, rule.Direction)
		}
	}

	return nil
}

// ApplyDefaults fills zero-valued fields after unmarshaling a partial
// config file.
func (c *Config) ApplyDefaults() {
	def := Default()

	if c.PollTimeout.Duration() == 0 {
		c.PollTimeout = def.PollTimeout
	}

	if c.HealthChecks == nil {
		c.HealthChecks = def.HealthChecks
	}

	if c.Topology.SuccessColor == "" {
		c.Topology.SuccessColor = def.Topology.SuccessColor
	}

	if c.Topology.PartialColor == "" {
		c.Topology.PartialColor = def.Topology.PartialColor
	}

	if c.Topology.FailedColor == "" {
		c.Topology.FailedColor = def.Topology.FailedColor
	}

	if c.Topology.DiscoveredColor == "" {
		c.Topology.DiscoveredColor = def.Topology.DiscoveredColor
	}
}
