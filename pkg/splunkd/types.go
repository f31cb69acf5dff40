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

package splunkd

import (
	"encoding/json"

	"github.com/splunktools/splunkscope/pkg/models"
)

// DeploymentInfo is the deploymentclient target-broker state.
// TargetURI is empty when the instance is not a deployment client;
// Disabled mirrors the stanza's disabled flag.
type DeploymentInfo struct {
	TargetURI string
	Disabled  bool
}

// ClusterInfo carries indexer-cluster and search-head-cluster facts.
// MasterURIs may hold several entries on multi-site clusters.
type ClusterInfo struct {
	Mode        string
	Label       string
	MasterURIs  []string
	SHCDeployer string

	// Peer management URIs reported by a cluster master.
	PeerURIs []string
}

// ResourceUsage is the hostwide resource snapshot.
type ResourceUsage struct {
	CPUUsagePct  float64
	MemUsagePct  float64
	SwapUsagePct float64
}

// HostStats bundles the server/status facts gathered in one category.
type HostStats struct {
	Partitions []models.DiskPartition
	Resources  *ResourceUsage
}

// apiResponse is the output_mode=json envelope every management
// endpoint returns.
type apiResponse struct {
	Entry []apiEntry `json:"entry"`
}

type apiEntry struct {
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content"`
}

type serverInfoContent struct {
	ServerName       string   `json:"serverName"`
	GUID             string   `json:"guid"`
	Version          string   `json:"version"`
	ProductType      string   `json:"product_type"`
	ServerRoles      []string `json:"server_roles"`
	OSNameExtended   string   `json:"os_name_extended"`
	OSName           string   `json:"os_name"`
	CPUArch          string   `json:"cpu_arch"`
	StartupTime      int64    `json:"startup_time"`
	NumberOfCores    int      `json:"numberOfCores"`
	PhysicalMemoryMB int      `json:"physicalMemoryMB"`
}

type distributedPeerContent struct {
	PeerName string `json:"peerName"`
	Status   string `json:"status"`
}

type clusterConfigContent struct {
	Mode      string `json:"mode"`
	MasterURI string `json:"master_uri"`
	Label     string `json:"cluster_label"`
}

type clusterPeerContent struct {
	Label         string `json:"label"`
	Site          string `json:"site"`
	HostPortPair  string `json:"host_port_pair"`
	Status        string `json:"status"`
	IsSearchable  bool   `json:"is_searchable"`
	ReplicationIP string `json:"register_replication_address"`
}

type shclusterConfigContent struct {
	ConfDeployFetchURL string `json:"conf_deploy_fetch_url"`
}

type partitionContent struct {
	MountPoint string      `json:"mount_point"`
	FSType     string      `json:"fs_type"`
	Capacity   json.Number `json:"capacity"`
	Free       json.Number `json:"free"`
}

type resourceUsageContent struct {
	CPUUsagePct json.Number `json:"normalized_load_avg_1min"`
	CPUPct      json.Number `json:"cpu_system_pct"`
	CPUUserPct  json.Number `json:"cpu_user_pct"`
	MemTotalMB  json.Number `json:"mem"`
	MemUsedMB   json.Number `json:"mem_used"`
	SwapTotalMB json.Number `json:"swap"`
	SwapUsedMB  json.Number `json:"swap_used"`
}

type messageContent struct {
	Severity         string      `json:"severity"`
	Message          string      `json:"message"`
	TimeCreatedEpoch json.Number `json:"timeCreated_epochSecs"`
}
