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

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splunktools/splunkscope/pkg/models"
)

func TestReadSeeds(t *testing.T) {
	input := strings.Join([]string{
		"address,port,username,password",
		"sh1.example.com,8089,admin,changeme",
		"10.0.0.5,9089,svc_poll,s3cret",
	}, "\n")

	seeds, err := ReadSeeds(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, seeds, 2)

	assert.Equal(t, models.InstanceKey{Host: "sh1.example.com", Port: 8089}, seeds[0].Key)
	assert.Equal(t, "admin", seeds[0].Credentials.Username)
	assert.Equal(t, "changeme", seeds[0].Credentials.Password)

	assert.Equal(t, models.InstanceKey{Host: "10.0.0.5", Port: 9089}, seeds[1].Key)
}

func TestReadSeedsHeaderCaseInsensitive(t *testing.T) {
	input := "Address, Port ,USERNAME,Password\nsh1,8089,admin,pw\n"

	seeds, err := ReadSeeds(strings.NewReader(input))

	require.NoError(t, err)
	assert.Len(t, seeds, 1)
}

func TestReadSeedsErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "empty input",
			input:    "",
			expected: ErrMissingHeader,
		},
		{
			name:     "wrong header",
			input:    "host,port,user,pass\nsh1,8089,admin,pw\n",
			expected: ErrMissingHeader,
		},
		{
			name:     "non-numeric port",
			input:    "address,port,username,password\nsh1,mgmt,admin,pw\n",
			expected: ErrBadSeedRow,
		},
		{
			name:     "port out of range",
			input:    "address,port,username,password\nsh1,70000,admin,pw\n",
			expected: ErrBadSeedRow,
		},
		{
			name:     "empty address",
			input:    "address,port,username,password\n,8089,admin,pw\n",
			expected: ErrBadSeedRow,
		},
		{
			name:     "wrong column count",
			input:    "address,port,username,password\nsh1,8089,admin\n",
			expected: ErrBadSeedRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSeeds(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestReadSeedsReportsLineNumber(t *testing.T) {
	input := "address,port,username,password\nsh1,8089,admin,pw\nsh2,bad,admin,pw\n"

	_, err := ReadSeeds(strings.NewReader(input))

	require.ErrorIs(t, err, ErrBadSeedRow)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadSeedsMissingFile(t *testing.T) {
	_, err := LoadSeeds("/nonexistent/seeds.csv")
	assert.Error(t, err)
}
