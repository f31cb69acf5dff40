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

// Package health maps raw metric values to Normal/Caution/Warning
// statuses using configured threshold rules.
package health

import (
	"strconv"
	"strings"

	"github.com/splunktools/splunkscope/pkg/models"
)

// Evaluator evaluates metrics against an immutable rule set.
type Evaluator struct {
	rules map[string]models.ThresholdRule
}

// NewEvaluator creates an evaluator over the given rules. The map is
// not copied; callers must not mutate it after construction.
func NewEvaluator(rules map[string]models.ThresholdRule) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate classifies one raw metric value. Metrics without a
// configured rule always evaluate Normal. Unparseable values evaluate
// Unknown rather than failing the report.
func (e *Evaluator) Evaluate(metric, raw string) models.HealthStatus {
	rule, ok := e.rules[metric]
	if !ok {
		return models.HealthNormal
	}

	value, err := parseValue(raw)
	if err != nil {
		return models.HealthUnknown
	}

	return evaluateRule(value, rule)
}

// EvaluateValue classifies an already-numeric metric value.
func (e *Evaluator) EvaluateValue(metric string, value float64) models.HealthStatus {
	rule, ok := e.rules[metric]
	if !ok {
		return models.HealthNormal
	}

	return evaluateRule(value, rule)
}

func evaluateRule(value float64, rule models.ThresholdRule) models.HealthStatus {
	switch rule.Direction {
	case models.DirectionBelow:
		if value <= rule.Warning {
			return models.HealthWarning
		}

		if value <= rule.Caution {
			return models.HealthCaution
		}
	default:
		if value >= rule.Warning {
			return models.HealthWarning
		}

		if value >= rule.Caution {
			return models.HealthCaution
		}
	}

	return models.HealthNormal
}

// parseValue accepts plain numbers plus the "95%" and "12.5 MB" forms
// splunkd endpoints hand back.
func parseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")

	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}

	return strconv.ParseFloat(s, 64)
}
