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

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/splunktools/splunkscope/pkg/discovery"
)

// Run drives a discovery run behind the interactive progress view. The
// orchestrator executes on its own goroutine; the UI owns cancellation
// and surfaces each instance as it completes. Returns the run results,
// which are partial when the user canceled mid-run.
func Run(ctx context.Context, orch *discovery.Orchestrator, seeds []discovery.Seed) (*discovery.Results, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := make(chan discovery.ProgressEvent)
	done := make(chan RunResult, 1)

	go func() {
		results, err := orch.Run(runCtx, seeds, progress)
		done <- RunResult{Results: results, Err: err}
	}()

	program := tea.NewProgram(NewModel(len(seeds), cancel, progress, done))

	final, err := program.Run()
	if err != nil {
		cancel()
		<-done

		return nil, fmt.Errorf("failed to run terminal UI: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		cancel()
		result := <-done

		return result.Results, result.Err
	}

	if model.err != nil {
		return nil, model.err
	}

	return model.results, nil
}
