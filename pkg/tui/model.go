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

// Package tui renders live discovery progress with Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/splunktools/splunkscope/pkg/discovery"
	"github.com/splunktools/splunkscope/pkg/models"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaPink       = "#FF79C6"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title, success, partial, failed, help, app lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		partial: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		app: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

// RunResult carries the orchestrator's final output into the TUI once
// the progress channel drains.
type RunResult struct {
	Results *discovery.Results
	Err     error
}

type progressMsg discovery.ProgressEvent

type doneMsg struct {
	results *discovery.Results
}

type runErrMsg struct {
	err error
}

// Model is the Bubble Tea model for one discovery run. It consumes
// the orchestrator's progress channel and a completion channel; q or
// ctrl+c requests cooperative cancellation via the supplied cancel
// function.
type Model struct {
	spinner  spinner.Model
	styles   styles
	cancel   func()
	progress <-chan discovery.ProgressEvent
	done     <-chan RunResult

	lines     []string
	completed int
	total     int
	canceling bool
	finished  bool
	results   *discovery.Results
	err       error
}

// NewModel builds the progress model. total is the seed-list size.
func NewModel(total int, cancel func(), progress <-chan discovery.ProgressEvent, done <-chan RunResult) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))

	return Model{
		spinner:  sp,
		styles:   newStyles(),
		cancel:   cancel,
		progress: progress,
		done:     done,
		total:    total,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// waitForEvent blocks on the next progress event or run completion.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-m.progress:
			if ok {
				return progressMsg(event)
			}

			result := <-m.done
			if result.Err != nil {
				return runErrMsg{err: result.Err}
			}

			return doneMsg{results: result.Results}
		case result := <-m.done:
			if result.Err != nil {
				return runErrMsg{err: result.Err}
			}

			return doneMsg{results: result.Results}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.finished {
				return m, tea.Quit
			}

			m.canceling = true
			m.cancel()

			return m, nil
		}
	case progressMsg:
		m.completed = msg.Index
		m.lines = append(m.lines, m.formatLine(discovery.ProgressEvent(msg)))

		return m, m.waitForEvent()
	case doneMsg:
		m.finished = true
		m.results = msg.results

		return m, tea.Quit
	case runErrMsg:
		m.finished = true
		m.err = msg.err

		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m Model) formatLine(event discovery.ProgressEvent) string {
	marker := m.styles.success.Render("ok")

	switch event.Outcome {
	case models.PollPartial:
		marker = m.styles.partial.Render("partial")
	case models.PollFailed:
		marker = m.styles.failed.Render("failed")
	}

	line := fmt.Sprintf("[%d/%d] %s %s", event.Index, event.Total, event.Key.String(), marker)
	if event.Error != "" {
		line += " " + m.styles.help.Render(event.Error)
	}

	return line
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.title.Render("splunkscope discovery"))
	sb.WriteString("\n\n")

	for _, line := range m.lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	switch {
	case m.err != nil:
		sb.WriteString(m.styles.failed.Render(fmt.Sprintf("run failed: %v", m.err)))
		sb.WriteString("\n")
	case m.finished && m.results != nil:
		status := "complete"
		if m.results.Canceled {
			status = "canceled"
		}

		sb.WriteString(fmt.Sprintf("run %s: %d polled, %d discovered\n",
			status, len(m.results.Reports), len(m.results.Discovered)))
	case m.canceling:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" canceling after current instance...\n")
	default:
		sb.WriteString(m.spinner.View())
		sb.WriteString(fmt.Sprintf(" polling %d/%d\n", m.completed, m.total))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.help.Render("q to cancel"))

	return m.styles.app.Render(sb.String())
}
