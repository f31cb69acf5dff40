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
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/splunktools/splunkscope/pkg/discovery"
	"github.com/splunktools/splunkscope/pkg/models"
	"github.com/splunktools/splunkscope/pkg/topology"
)

var baseColumns = []string{
	"address",
	"port",
	"outcome",
	"error",
	"role_layer",
	"server_name",
	"guid",
	"version",
	"product",
	"os",
	"roles",
	"deployment_server",
	"cluster_masters",
	"shc_deployer",
	"receiving_ports",
	"adjacencies",
}

// WriteCSV writes one row per node, polled instances in seed order
// first, then discovered placeholders. Failed and partial instances
// keep their rows with an explicit outcome and error column rather
// than being omitted. Health columns carry value and level label
// pairs, one pair per metric seen anywhere in the run.
func WriteCSV(w io.Writer, results *discovery.Results) error {
	metrics := collectMetrics(results)

	header := append([]string{}, baseColumns...)
	for _, metric := range metrics {
		header = append(header, metric, metric+"_status")
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, key := range results.Order {
		if err := writer.Write(reportRow(results.Reports[key], metrics)); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	discoveredKeys := make([]models.InstanceKey, 0, len(results.Discovered))
	for key := range results.Discovered {
		discoveredKeys = append(discoveredKeys, key)
	}

	sort.Slice(discoveredKeys, func(i, j int) bool {
		return discoveredKeys[i].String() < discoveredKeys[j].String()
	})

	for _, key := range discoveredKeys {
		if err := writer.Write(discoveredRow(results.Discovered[key], metrics)); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// collectMetrics returns the sorted union of health metric names
// across every report so the column set is stable.
func collectMetrics(results *discovery.Results) []string {
	set := make(map[string]struct{})

	for _, report := range results.Reports {
		for metric := range report.Health {
			set[metric] = struct{}{}
		}
	}

	metrics := make([]string, 0, len(set))
	for metric := range set {
		metrics = append(metrics, metric)
	}

	sort.Strings(metrics)

	return metrics
}

func reportRow(report *models.InstanceReport, metrics []string) []string {
	var serverName, guid, version, product, osName string
	if report.Info != nil {
		serverName = report.Info.ServerName
		guid = report.Info.GUID
		version = report.Info.Version
		product = report.Info.ProductType
		osName = report.Info.OS
	}

	adjacencies := make([]string, 0, len(report.Adjacencies))
	for _, adj := range report.Adjacencies {
		adjacencies = append(adjacencies, fmt.Sprintf("%s (%s)", adj.Peer.String(), adj.Relation))
	}

	ports := make([]string, 0, len(report.ReceivingPorts))
	for _, port := range report.ReceivingPorts {
		ports = append(ports, strconv.Itoa(port))
	}

	row := []string{
		report.Key.Host,
		fmt.Sprintf("%d", report.Key.Port),
		string(report.Outcome),
		report.Error,
		topology.Classify(report.Roles).String(),
		serverName,
		guid,
		version,
		product,
		osName,
		strings.Join(report.Roles, " "),
		report.DeploymentServer,
		strings.Join(report.ClusterMasterURIs, " "),
		report.SHCDeployer,
		strings.Join(ports, " "),
		strings.Join(adjacencies, "; "),
	}

	for _, metric := range metrics {
		if result, ok := report.Health[metric]; ok {
			row = append(row, result.Raw, string(result.Status))
		} else {
			row = append(row, "", "")
		}
	}

	return row
}

func discoveredRow(node *models.DiscoveredNode, metrics []string) []string {
	row := []string{
		node.Key.Host,
		fmt.Sprintf("%d", node.Key.Port),
		"unvisited",
		"",
		topology.LayerDiscovered.String(),
		"", "", "", "", "", "",
		"", "", "", "",
		fmt.Sprintf("reported by %s", node.ReportedBy.String()),
	}

	for range metrics {
		row = append(row, "", "")
	}

	return row
}
