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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/splunktools/splunkscope/pkg/health"
	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
	"github.com/splunktools/splunkscope/pkg/splunkd"
)

func testSeed(host string) Seed {
	return Seed{
		Key:         models.InstanceKey{Host: host, Port: 8089},
		Credentials: models.Credentials{Username: "admin", Password: "changeme"},
	}
}

func testEvaluator() *health.Evaluator {
	return health.NewEvaluator(map[string]models.ThresholdRule{
		"disk_usage_pct": {Caution: 80, Warning: 90, Direction: models.DirectionAbove},
		"uptime_sec":     {Caution: 604800, Warning: 3600, Direction: models.DirectionBelow},
	})
}

func newTestBuilder(connector splunkd.Connector) *ReportBuilder {
	return NewReportBuilder(connector, testEvaluator(), logger.NewTestLogger())
}

func TestBuildConnectFailure(t *testing.T) {
	seed := testSeed("sh1")

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seed.Key, seed.Credentials).
		Return(nil, splunkd.ErrConnect)

	report := newTestBuilder(connector).Build(context.Background(), seed)

	assert.Equal(t, models.PollFailed, report.Outcome)
	assert.NotEmpty(t, report.Error)
	assert.Nil(t, report.Info)
	assert.Empty(t, report.Adjacencies)

	connector.AssertExpectations(t)
}

func TestBuildFullSuccess(t *testing.T) {
	seed := testSeed("sh1")

	client := &mockClient{}
	client.On("Identity", mock.Anything).Return(
		&models.ServerInfo{
			ServerName:  "sh1.example.com",
			Version:     "9.2.1",
			StartupTime: time.Now().Add(-30 * 24 * time.Hour).Unix(),
		},
		[]string{models.RoleSearchHead},
		nil)
	client.On("SearchPeers", mock.Anything).Return(
		[]string{"idx1:8089", "idx2:8089"}, nil)
	client.On("DeploymentInfo", mock.Anything).Return(
		&splunkd.DeploymentInfo{TargetURI: "ds1:8089"}, nil)
	client.On("ClusterInfo", mock.Anything).Return(
		&splunkd.ClusterInfo{
			Mode:        "searchhead",
			MasterURIs:  []string{"https://cm1:8089"},
			SHCDeployer: "https://dep1:8089",
		}, nil)
	client.On("ReceivingPorts", mock.Anything).Return([]int{9997}, nil)
	client.On("HostStats", mock.Anything).Return(
		&splunkd.HostStats{
			Partitions: []models.DiskPartition{
				{Name: "/", PercentUsed: 42},
				{Name: "/opt", PercentUsed: 95},
			},
			Resources: &splunkd.ResourceUsage{CPUUsagePct: 12, MemUsagePct: 30},
		}, nil)
	client.On("Messages", mock.Anything).Return([]models.Message{}, nil)

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seed.Key, seed.Credentials).Return(client, nil)

	report := newTestBuilder(connector).Build(context.Background(), seed)

	assert.Equal(t, models.PollSuccess, report.Outcome)
	assert.Empty(t, report.Error)
	assert.Equal(t, "sh1.example.com", report.Info.ServerName)
	assert.True(t, report.HasRole(models.RoleSearchHead))

	assert.Equal(t, []int{9997}, report.ReceivingPorts)
	assert.Equal(t, "ds1:8089", report.DeploymentServer)
	assert.Equal(t, []string{"https://cm1:8089"}, report.ClusterMasterURIs)
	assert.Equal(t, "https://dep1:8089", report.SHCDeployer)

	// Two search peers, one deployment server, one cluster master, one
	// shc deployer, all normalized and deduplicated.
	require.Len(t, report.Adjacencies, 5)
	assert.Equal(t, models.Adjacency{
		Peer:     models.InstanceKey{Host: "idx1", Port: 8089},
		Relation: models.RelationSearchPeer,
	}, report.Adjacencies[0])
	assert.Equal(t, models.Adjacency{
		Peer:     models.InstanceKey{Host: "dep1", Port: 8089},
		Relation: models.RelationSHCMember,
	}, report.Adjacencies[4])

	// Worst partition drives the disk metric.
	assert.Equal(t, models.HealthWarning, report.Health["disk_usage_pct"].Status)
	assert.Equal(t, models.HealthNormal, report.Health["uptime_sec"].Status)
	assert.Equal(t, models.HealthNormal, report.Health["cpu_usage_pct"].Status)
	assert.Equal(t, models.HealthResult{Raw: "None", Status: models.HealthNormal}, report.Health["messages"])

	client.AssertExpectations(t)
}

func TestBuildSectionFailureDegradesToPartial(t *testing.T) {
	seed := testSeed("sh1")

	client := &mockClient{}
	client.On("SearchPeers", mock.Anything).Return(nil, splunkd.ErrFetch)
	stubFacts(client)

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seed.Key, seed.Credentials).Return(client, nil)

	report := newTestBuilder(connector).Build(context.Background(), seed)

	assert.Equal(t, models.PollPartial, report.Outcome)
	assert.Contains(t, report.Error, "search_peers")
	assert.Empty(t, report.Adjacencies)

	// The remaining sections still ran.
	client.AssertCalled(t, "Messages", mock.Anything)
	client.AssertCalled(t, "HostStats", mock.Anything)
}

func TestBuildDeploymentStates(t *testing.T) {
	tests := []struct {
		name        string
		info        *splunkd.DeploymentInfo
		expected    string
		adjacencies int
	}{
		{
			name:     "disabled stanza",
			info:     &splunkd.DeploymentInfo{Disabled: true, TargetURI: "ds1:8089"},
			expected: "(disabled)",
		},
		{
			name:     "no target configured",
			info:     &splunkd.DeploymentInfo{},
			expected: "(none)",
		},
		{
			name:        "active deployment client",
			info:        &splunkd.DeploymentInfo{TargetURI: "https://ds1:8089"},
			expected:    "https://ds1:8089",
			adjacencies: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := testSeed("fwd1")

			client := &mockClient{}
			client.On("DeploymentInfo", mock.Anything).Return(tt.info, nil)
			stubFacts(client)

			connector := &mockConnector{}
			connector.On("Connect", mock.Anything, seed.Key, seed.Credentials).Return(client, nil)

			report := newTestBuilder(connector).Build(context.Background(), seed)

			assert.Equal(t, models.PollSuccess, report.Outcome)
			assert.Equal(t, tt.expected, report.DeploymentServer)
			assert.Len(t, report.Adjacencies, tt.adjacencies)
		})
	}
}

func TestBuildSkipsSelfAndDuplicateAdjacencies(t *testing.T) {
	seed := testSeed("sh1")

	client := &mockClient{}
	client.On("SearchPeers", mock.Anything).Return(
		[]string{"sh1:8089", "idx1:8089", "https://idx1:8089"}, nil)
	stubFacts(client)

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seed.Key, seed.Credentials).Return(client, nil)

	report := newTestBuilder(connector).Build(context.Background(), seed)

	require.Len(t, report.Adjacencies, 1)
	assert.Equal(t, models.InstanceKey{Host: "idx1", Port: 8089}, report.Adjacencies[0].Peer)
}

func TestBuildNonInfoMessagesFlagCaution(t *testing.T) {
	seed := testSeed("idx1")

	client := &mockClient{}
	client.On("Messages", mock.Anything).Return([]models.Message{
		{Severity: "INFO", Title: "rolling restart done"},
		{Severity: "WARN", Title: "disk nearly full"},
	}, nil)
	stubFacts(client)

	connector := &mockConnector{}
	connector.On("Connect", mock.Anything, seed.Key, seed.Credentials).Return(client, nil)

	report := newTestBuilder(connector).Build(context.Background(), seed)

	assert.Equal(t, models.HealthResult{
		Raw:    "disk nearly full",
		Status: models.HealthCaution,
	}, report.Health["messages"])
}
