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

package models

// HealthStatus is the three-level health classification plus Unknown
// for values that could not be parsed.
type HealthStatus string

const (
	HealthNormal  HealthStatus = "Normal"
	HealthCaution HealthStatus = "Caution"
	HealthWarning HealthStatus = "Warning"
	HealthUnknown HealthStatus = "Unknown"
)

// ThresholdDirection controls which side of a threshold triggers.
// "above" metrics trip at-or-above (disk usage percent); "below"
// metrics trip at-or-below (free disk space).
type ThresholdDirection string

const (
	DirectionAbove ThresholdDirection = "above"
	DirectionBelow ThresholdDirection = "below"
)

// ThresholdRule configures caution/warning boundaries for one metric.
type ThresholdRule struct {
	Caution   float64            `json:"caution" yaml:"caution"`
	Warning   float64            `json:"warning" yaml:"warning"`
	Direction ThresholdDirection `json:"direction" yaml:"direction"`
}

// HealthResult pairs the raw metric value with its evaluated status.
type HealthResult struct {
	Raw    string       `json:"raw"`
	Status HealthStatus `json:"status"`
}
