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

// Package report handles seed-list input and discovery-report output
// in CSV form.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/splunktools/splunkscope/pkg/discovery"
	"github.com/splunktools/splunkscope/pkg/models"
)

var (
	ErrMissingHeader = errors.New("seed file missing address,port,username,password header")
	ErrBadSeedRow    = errors.New("invalid seed row")
)

var seedHeader = []string{"address", "port", "username", "password"}

// LoadSeeds reads the seed CSV: header row required, one seed
// instance per row.
func LoadSeeds(path string) ([]discovery.Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadSeeds(f)
}

// ReadSeeds parses seed rows from r.
func ReadSeeds(r io.Reader) ([]discovery.Seed, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(seedHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingHeader, err)
	}

	for i, col := range seedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return nil, fmt.Errorf("%w: got %v", ErrMissingHeader, header)
		}
	}

	var seeds []discovery.Seed

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadSeedRow, line, err)
		}

		port, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: line %d: bad port %q", ErrBadSeedRow, line, record[1])
		}

		address := strings.TrimSpace(record[0])
		if address == "" {
			return nil, fmt.Errorf("%w: line %d: empty address", ErrBadSeedRow, line)
		}

		seeds = append(seeds, discovery.Seed{
			Key: models.InstanceKey{Host: address, Port: port},
			Credentials: models.Credentials{
				Username: record[2],
				Password: record[3],
			},
		})
	}

	return seeds, nil
}
