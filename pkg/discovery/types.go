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

// Package discovery polls a seed list of splunkd instances, builds one
// report per instance, and accumulates adjacency placeholders for a
// topology run.
package discovery

import (
	"time"

	"github.com/splunktools/splunkscope/pkg/models"
)

// Seed is one row of the seed list: where to connect and as whom.
type Seed struct {
	Key         models.InstanceKey
	Credentials models.Credentials
}

// ProgressEvent is emitted once per completed instance so a caller can
// render live progress. Single producer (the run goroutine), single
// consumer.
type ProgressEvent struct {
	RunID      string
	Index      int // 1-based position in the seed list
	Total      int
	Key        models.InstanceKey
	Outcome    models.PollOutcome
	Error      string
	Discovered int // placeholders known so far
}

// Results is the accumulated output of one discovery run. A canceled
// run returns the partial set gathered before the cancellation was
// observed.
type Results struct {
	RunID      string
	StartTime  time.Time
	EndTime    time.Time
	Canceled   bool
	Reports    map[models.InstanceKey]*models.InstanceReport
	Discovered map[models.InstanceKey]*models.DiscoveredNode

	// Order preserves seed-list polling order for report output.
	Order []models.InstanceKey
}
