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

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by config types that can check themselves
// after loading.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by config types that fill unset fields
// after loading.
type Defaulter interface {
	ApplyDefaults()
}

// LoadAndValidate reads a JSON or YAML config file into dst, applies
// defaults, and validates the result. The format is chosen by file
// extension; anything that is not .yaml/.yml is treated as JSON.
func LoadAndValidate(_ context.Context, path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %q: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %q: %w", path, err)
		}
	}

	if d, ok := dst.(Defaulter); ok {
		d.ApplyDefaults()
	}

	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid config %q: %w", path, err)
		}
	}

	return nil
}
