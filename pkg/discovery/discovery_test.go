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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
	"github.com/splunktools/splunkscope/pkg/splunkd"
)

func newTestOrchestrator(connector splunkd.Connector) *Orchestrator {
	return NewOrchestrator(newTestBuilder(connector), logger.NewTestLogger())
}

func TestRunEmptySeedList(t *testing.T) {
	orch := newTestOrchestrator(&mockConnector{})

	results, err := orch.Run(context.Background(), nil, nil)

	require.ErrorIs(t, err, ErrNoSeeds)
	assert.Nil(t, results)
}

func TestRunPollsEverySeed(t *testing.T) {
	seeds := []Seed{testSeed("a"), testSeed("b"), testSeed("c")}

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, mock.Anything, mock.Anything).
		Return(newHealthyClient(), nil)

	results, err := newTestOrchestrator(connector).Run(context.Background(), seeds, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, results.RunID)
	assert.False(t, results.Canceled)
	assert.Len(t, results.Reports, 3)

	require.Len(t, results.Order, 3)
	assert.Equal(t, seeds[0].Key, results.Order[0])
	assert.Equal(t, seeds[2].Key, results.Order[2])

	for _, key := range results.Order {
		assert.Equal(t, models.PollSuccess, results.Reports[key].Outcome)
	}
}

func TestRunFailedInstanceNeverAbortsRun(t *testing.T) {
	seeds := []Seed{testSeed("dead"), testSeed("alive")}

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seeds[0].Key, mock.Anything).
		Return(nil, splunkd.ErrConnect)
	connector.On("Connect", mock.Anything, seeds[1].Key, mock.Anything).
		Return(newHealthyClient(), nil)

	results, err := newTestOrchestrator(connector).Run(context.Background(), seeds, nil)

	require.NoError(t, err)
	assert.Len(t, results.Reports, 2)
	assert.Equal(t, models.PollFailed, results.Reports[seeds[0].Key].Outcome)
	assert.Equal(t, models.PollSuccess, results.Reports[seeds[1].Key].Outcome)
}

func TestRunSkipsDuplicateSeeds(t *testing.T) {
	seeds := []Seed{testSeed("a"), testSeed("a"), testSeed("a")}

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, mock.Anything, mock.Anything).
		Return(newHealthyClient(), nil).Once()

	results, err := newTestOrchestrator(connector).Run(context.Background(), seeds, nil)

	require.NoError(t, err)
	assert.Len(t, results.Reports, 1)
	assert.Len(t, results.Order, 1)

	connector.AssertExpectations(t)
}

func TestRunCancellationReturnsPartialResults(t *testing.T) {
	seeds := []Seed{testSeed("a"), testSeed("b"), testSeed("c"), testSeed("d")}

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel while the second instance is in flight: it completes, the
	// remaining two are never attempted.
	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seeds[0].Key, mock.Anything).
		Return(newHealthyClient(), nil)
	connector.On("Connect", mock.Anything, seeds[1].Key, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(newHealthyClient(), nil)

	results, err := newTestOrchestrator(connector).Run(ctx, seeds, nil)

	require.NoError(t, err)
	assert.True(t, results.Canceled)
	assert.Len(t, results.Reports, 2)
	assert.Len(t, results.Order, 2)

	connector.AssertNotCalled(t, "Connect", mock.Anything, seeds[2].Key, mock.Anything)
	connector.AssertNotCalled(t, "Connect", mock.Anything, seeds[3].Key, mock.Anything)
}

func TestRunAccumulatesAndPromotesPlaceholders(t *testing.T) {
	seedA := testSeed("a")
	seedB := testSeed("b")

	clientA := &mockClient{}
	clientA.On("SearchPeers", mock.Anything).Return([]string{"b:8089", "c:8089"}, nil)
	stubFacts(clientA)

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seedA.Key, mock.Anything).Return(clientA, nil)
	connector.On("Connect", mock.Anything, seedB.Key, mock.Anything).Return(newHealthyClient(), nil)

	results, err := newTestOrchestrator(connector).Run(
		context.Background(), []Seed{seedA, seedB}, nil)

	require.NoError(t, err)
	assert.Len(t, results.Reports, 2)

	// b was first seen as a placeholder, then promoted by its own poll;
	// c stays discovered and is never polled.
	require.Len(t, results.Discovered, 1)

	node, ok := results.Discovered[models.InstanceKey{Host: "c", Port: 8089}]
	require.True(t, ok)
	assert.Equal(t, seedA.Key, node.ReportedBy)
	assert.False(t, node.FirstSeen.IsZero())

	connector.AssertNotCalled(t, "Connect",
		mock.Anything, models.InstanceKey{Host: "c", Port: 8089}, mock.Anything)
}

func TestRunEmitsProgressAndClosesChannel(t *testing.T) {
	seeds := []Seed{testSeed("a"), testSeed("b")}

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, mock.Anything, mock.Anything).
		Return(newHealthyClient(), nil)

	progress := make(chan ProgressEvent, len(seeds))

	results, err := newTestOrchestrator(connector).Run(context.Background(), seeds, progress)
	require.NoError(t, err)

	var events []ProgressEvent
	for event := range progress {
		events = append(events, event)
	}

	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Index)
	assert.Equal(t, 2, events[0].Total)
	assert.Equal(t, seeds[0].Key, events[0].Key)
	assert.Equal(t, models.PollSuccess, events[0].Outcome)
	assert.Equal(t, results.RunID, events[1].RunID)
	assert.Equal(t, 2, events[1].Index)
}

func TestRunEmptySeedsStillClosesProgress(t *testing.T) {
	progress := make(chan ProgressEvent, 1)

	_, err := newTestOrchestrator(&mockConnector{}).Run(context.Background(), nil, progress)
	require.ErrorIs(t, err, ErrNoSeeds)

	_, open := <-progress
	assert.False(t, open)
}
