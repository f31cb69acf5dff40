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
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
)

// Orchestrator drives one discovery run: a strictly sequential poll
// loop over the seed list. Splunk management APIs are low-QPS, and
// sequential polling keeps error attribution per-instance unambiguous.
type Orchestrator struct {
	builder *ReportBuilder
	logger  logger.Logger
}

func NewOrchestrator(builder *ReportBuilder, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		builder: builder,
		logger:  log.WithComponent("discovery"),
	}
}

// Run executes a discovery run over seeds. It is intended to run on a
// single worker goroutine; the controller cancels via ctx and reads
// progress events from the optional progress channel (one event per
// completed instance, single producer, closed on return).
//
// Cancellation is cooperative: the signal is checked between
// instances, the in-flight instance completes, and the partial
// accumulated set is returned rather than discarded. A failed instance
// never aborts the run. Only an empty seed list is a terminal error.
func (o *Orchestrator) Run(ctx context.Context, seeds []Seed, progress chan<- ProgressEvent) (*Results, error) {
	if progress != nil {
		defer close(progress)
	}

	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}

	results := &Results{
		RunID:      uuid.New().String(),
		StartTime:  time.Now(),
		Reports:    make(map[models.InstanceKey]*models.InstanceReport),
		Discovered: make(map[models.InstanceKey]*models.DiscoveredNode),
	}

	o.logger.Info().
		Str("run_id", results.RunID).
		Int("seeds", len(seeds)).
		Msg("Starting discovery run")

	for i, seed := range seeds {
		select {
		case <-ctx.Done():
			results.Canceled = true
			results.EndTime = time.Now()

			o.logger.Info().
				Str("run_id", results.RunID).
				Int("completed", len(results.Reports)).
				Msg("Discovery run canceled, returning partial results")

			return results, nil
		default:
		}

		// Never re-poll a key already in the accumulated set, even if
		// it appears twice in the seed list.
		if _, seen := results.Reports[seed.Key]; seen {
			o.logger.Debug().Str("instance", seed.Key.String()).Msg("Duplicate seed skipped")
			continue
		}

		report := o.builder.Build(ctx, seed)
		results.Reports[seed.Key] = report
		results.Order = append(results.Order, seed.Key)

		// A key first seen as a placeholder is promoted to a full
		// report once its seed entry is polled.
		delete(results.Discovered, seed.Key)

		o.accumulatePlaceholders(results, report)

		o.logger.Info().
			Str("run_id", results.RunID).
			Str("instance", seed.Key.String()).
			Str("outcome", string(report.Outcome)).
			Int("adjacencies", len(report.Adjacencies)).
			Msg("Instance polled")

		if progress != nil {
			event := ProgressEvent{
				RunID:      results.RunID,
				Index:      i + 1,
				Total:      len(seeds),
				Key:        seed.Key,
				Outcome:    report.Outcome,
				Error:      report.Error,
				Discovered: len(results.Discovered),
			}

			select {
			case progress <- event:
			case <-ctx.Done():
			}
		}
	}

	results.EndTime = time.Now()

	o.logger.Info().
		Str("run_id", results.RunID).
		Int("reports", len(results.Reports)).
		Int("discovered", len(results.Discovered)).
		Dur("elapsed", results.EndTime.Sub(results.StartTime)).
		Msg("Discovery run completed")

	return results, nil
}

// accumulatePlaceholders registers adjacency targets not yet present
// as discovered nodes. Placeholders are never polled: only seed-list
// instances are polled, a deliberate scope restriction.
func (o *Orchestrator) accumulatePlaceholders(results *Results, report *models.InstanceReport) {
	for _, adj := range report.Adjacencies {
		if _, polled := results.Reports[adj.Peer]; polled {
			continue
		}

		if _, known := results.Discovered[adj.Peer]; known {
			continue
		}

		results.Discovered[adj.Peer] = &models.DiscoveredNode{
			Key:        adj.Peer,
			FirstSeen:  time.Now(),
			ReportedBy: report.Key,
		}

		o.logger.Debug().
			Str("instance", adj.Peer.String()).
			Str("reported_by", report.Key.String()).
			Msg("Unpolled peer recorded as discovered node")
	}
}
