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
	"fmt"
	"strings"
	"time"

	"github.com/splunktools/splunkscope/pkg/health"
	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
	"github.com/splunktools/splunkscope/pkg/splunkd"
)

// ReportBuilder produces one InstanceReport per instance by issuing
// the fixed sequence of fact-gathering calls. Each call after the
// initial connect is independently fault-tolerant: a failure empties
// that section and downgrades the outcome to partial.
type ReportBuilder struct {
	connector splunkd.Connector
	evaluator *health.Evaluator
	logger    logger.Logger
}

func NewReportBuilder(connector splunkd.Connector, evaluator *health.Evaluator, log logger.Logger) *ReportBuilder {
	return &ReportBuilder{
		connector: connector,
		evaluator: evaluator,
		logger:    log.WithComponent("report"),
	}
}

// Build polls one instance. It never returns an error: poll failures
// are captured as data on the report (outcome plus message).
func (b *ReportBuilder) Build(ctx context.Context, seed Seed) *models.InstanceReport {
	report := &models.InstanceReport{
		Key:         seed.Key,
		Credentials: seed.Credentials,
		Outcome:     models.PollSuccess,
		Health:      make(map[string]models.HealthResult),
		PolledAt:    time.Now(),
	}

	client, err := b.connector.Connect(ctx, seed.Key, seed.Credentials)
	if err != nil {
		report.Outcome = models.PollFailed
		report.Error = err.Error()

		b.logger.Warn().Err(err).Str("instance", seed.Key.String()).Msg("Connect failed")

		return report
	}

	var sectionErrs []string

	degrade := func(section string, err error) {
		report.Outcome = models.PollPartial
		sectionErrs = append(sectionErrs, fmt.Sprintf("%s: %v", section, err))

		b.logger.Warn().Err(err).
			Str("instance", seed.Key.String()).
			Str("section", section).
			Msg("Fact call failed, section unavailable")
	}

	b.gatherIdentity(ctx, client, report, degrade)
	b.gatherSearchPeers(ctx, client, report, degrade)
	b.gatherDeployment(ctx, client, report, degrade)
	b.gatherCluster(ctx, client, report, degrade)
	b.gatherReceiving(ctx, client, report, degrade)
	b.gatherHostStats(ctx, client, report, degrade)
	b.gatherMessages(ctx, client, report, degrade)

	if len(sectionErrs) > 0 {
		report.Error = strings.Join(sectionErrs, "; ")
	}

	return report
}

func (b *ReportBuilder) gatherIdentity(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	info, roles, err := client.Identity(ctx)
	if err != nil {
		degrade("identity", err)
		return
	}

	report.Info = info
	report.Roles = roles

	if info.StartupTime > 0 {
		uptime := time.Since(time.Unix(info.StartupTime, 0))
		b.recordMetric(report, "uptime_sec", fmt.Sprintf("%.0f", uptime.Seconds()), uptime.Seconds())
	}
}

func (b *ReportBuilder) gatherSearchPeers(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	peers, err := client.SearchPeers(ctx)
	if err != nil {
		degrade("search_peers", err)
		return
	}

	for _, peer := range peers {
		b.addAdjacency(report, peer, models.RelationSearchPeer)
	}
}

func (b *ReportBuilder) gatherDeployment(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	info, err := client.DeploymentInfo(ctx)
	if err != nil {
		degrade("deployment", err)
		return
	}

	switch {
	case info.Disabled:
		report.DeploymentServer = "(disabled)"
	case info.TargetURI == "":
		report.DeploymentServer = "(none)"
	default:
		report.DeploymentServer = info.TargetURI
		b.addAdjacency(report, info.TargetURI, models.RelationDeploymentClient)
	}
}

func (b *ReportBuilder) gatherCluster(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	info, err := client.ClusterInfo(ctx)
	if err != nil {
		degrade("cluster", err)
		return
	}

	report.ClusterMasterURIs = info.MasterURIs
	report.SHCDeployer = info.SHCDeployer

	for _, uri := range info.MasterURIs {
		b.addAdjacency(report, uri, models.RelationClusterMember)
	}

	for _, uri := range info.PeerURIs {
		b.addAdjacency(report, uri, models.RelationClusterMember)
	}

	if info.SHCDeployer != "" {
		b.addAdjacency(report, info.SHCDeployer, models.RelationSHCMember)
	}
}

func (b *ReportBuilder) gatherReceiving(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	ports, err := client.ReceivingPorts(ctx)
	if err != nil {
		degrade("receiving", err)
		return
	}

	report.ReceivingPorts = ports
}

func (b *ReportBuilder) gatherHostStats(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	stats, err := client.HostStats(ctx)
	if err != nil {
		degrade("host_stats", err)
		return
	}

	report.DiskPartitions = stats.Partitions

	var worst float64

	for _, part := range stats.Partitions {
		if part.PercentUsed > worst {
			worst = part.PercentUsed
		}
	}

	if len(stats.Partitions) > 0 {
		b.recordMetric(report, "disk_usage_pct", fmt.Sprintf("%.1f%%", worst), worst)
	}

	if stats.Resources != nil {
		b.recordMetric(report, "cpu_usage_pct",
			fmt.Sprintf("%.1f%%", stats.Resources.CPUUsagePct), stats.Resources.CPUUsagePct)
		b.recordMetric(report, "mem_usage_pct",
			fmt.Sprintf("%.1f%%", stats.Resources.MemUsagePct), stats.Resources.MemUsagePct)
		b.recordMetric(report, "swap_usage_pct",
			fmt.Sprintf("%.1f%%", stats.Resources.SwapUsagePct), stats.Resources.SwapUsagePct)
	}
}

func (b *ReportBuilder) gatherMessages(
	ctx context.Context, client splunkd.Client, report *models.InstanceReport, degrade func(string, error)) {
	messages, err := client.Messages(ctx)
	if err != nil {
		degrade("messages", err)
		return
	}

	report.Messages = messages

	// Any non-informational banner message flags the instance.
	status := models.HealthNormal
	titles := make([]string, 0, len(messages))

	for i := range messages {
		if !strings.EqualFold(messages[i].Severity, "info") {
			status = models.HealthCaution
			titles = append(titles, messages[i].Title)
		}
	}

	raw := "None"
	if len(titles) > 0 {
		raw = strings.Join(titles, ", ")
	}

	report.Health["messages"] = models.HealthResult{Raw: raw, Status: status}
}

// recordMetric evaluates a numeric metric and stores the result.
func (b *ReportBuilder) recordMetric(report *models.InstanceReport, metric, raw string, value float64) {
	report.Health[metric] = models.HealthResult{
		Raw:    raw,
		Status: b.evaluator.EvaluateValue(metric, value),
	}
}

// addAdjacency normalizes a peer URI and appends it, skipping
// self-references and duplicates within the report.
func (b *ReportBuilder) addAdjacency(report *models.InstanceReport, uri string, relation models.RelationType) {
	key, ok := normalizeKey(uri)
	if !ok || key == report.Key {
		return
	}

	for _, existing := range report.Adjacencies {
		if existing.Peer == key {
			return
		}
	}

	report.Adjacencies = append(report.Adjacencies, models.Adjacency{
		Peer:     key,
		Relation: relation,
	})
}
