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

package discovery

import (
	"strconv"
	"strings"

	"github.com/splunktools/splunkscope/pkg/models"
)

const defaultMgmtPort = 8089

// normalizeKey converts the URI forms splunkd hands back for peers
// ("https://host:8089", "host:8089", bare "host") into an InstanceKey.
// Host matching stays exact-string: hostnames and IPs naming the same
// machine produce distinct keys.
func normalizeKey(uri string) (models.InstanceKey, bool) {
	s := strings.TrimSpace(uri)
	if s == "" || s == "(none)" || s == "(disabled)" {
		return models.InstanceKey{}, false
	}

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}

	host := s
	port := defaultMgmtPort

	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		parsed, err := strconv.Atoi(s[i+1:])
		if err != nil || parsed <= 0 {
			return models.InstanceKey{}, false
		}

		host = s[:i]
		port = parsed
	}

	if host == "" {
		return models.InstanceKey{}, false
	}

	return models.InstanceKey{Host: host, Port: port}, true
}
