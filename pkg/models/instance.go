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

// Package models holds the shared data model for splunkscope.
package models

import (
	"fmt"
	"time"
)

// InstanceKey uniquely identifies a splunkd instance by management
// address and port. Matching is exact string plus port; hostnames and
// IPs referring to the same instance are NOT unified.
type InstanceKey struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (k InstanceKey) String() string {
	return fmt.Sprintf("%s:%d", k.Host, k.Port)
}

// Credentials carries the management-API login for one instance.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// PollOutcome describes how a single instance poll finished.
type PollOutcome string

const (
	PollSuccess PollOutcome = "success"
	PollPartial PollOutcome = "partial"
	PollFailed  PollOutcome = "failed"
)

// RelationType labels an adjacency edge between two instances.
type RelationType string

const (
	RelationDeploymentClient RelationType = "deployment client of"
	RelationClusterMember    RelationType = "cluster member of"
	RelationSearchPeer       RelationType = "search peer of"
	RelationSHCMember        RelationType = "shc member of"
)

// Adjacency is a directed relation one instance reports having with
// another, normalized to InstanceKey form.
type Adjacency struct {
	Peer     InstanceKey  `json:"peer"`
	Relation RelationType `json:"relation"`
}

// Splunk server roles as reported by /services/server/info server_roles.
const (
	RoleManagementConsole   = "management_console"
	RoleSHCDeployer         = "shc_deployer"
	RoleSHCMember           = "shc_member"
	RoleSHCCaptain          = "shc_captain"
	RoleSearchHead          = "search_head"
	RoleClusterSearchHead   = "cluster_search_head"
	RoleLicenseMaster       = "license_master"
	RoleDeploymentServer    = "deployment_server"
	RoleClusterMaster       = "cluster_master"
	RoleClusterSlave        = "cluster_slave"
	RoleIndexer             = "indexer"
	RoleHeavyForwarder      = "heavyweight_forwarder"
	RoleUniversalForwarder  = "universal_forwarder"
	RoleLightweightForwader = "lightweight_forwarder"
	RoleDeploymentClient    = "deployment_client"
)

// ServerInfo is the identity block of one polled instance.
type ServerInfo struct {
	ServerName  string `json:"server_name"`
	GUID        string `json:"guid"`
	Version     string `json:"version"`
	ProductType string `json:"product_type"`
	OS          string `json:"os"`
	StartupTime int64  `json:"startup_time"`
	Cores       int    `json:"cores"`
	RAMMB       int    `json:"ram_mb"`
}

// Message is one splunkd banner message.
type Message struct {
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

// DiskPartition is one mounted filesystem reported by server/status.
type DiskPartition struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	PercentUsed float64 `json:"percent_used"`
	FreeMB      float64 `json:"free_mb"`
}

// InstanceReport is the normalized record produced for one polled
// instance during a discovery run. It is immutable once built; a run
// never re-polls a key.
type InstanceReport struct {
	Key         InstanceKey  `json:"key"`
	Credentials Credentials  `json:"credentials"`
	Outcome     PollOutcome  `json:"outcome"`
	Error       string       `json:"error,omitempty"`
	Roles       []string     `json:"roles"`
	Info        *ServerInfo  `json:"info,omitempty"`
	Adjacencies []Adjacency  `json:"adjacencies"`

	// Deployment facts. DeploymentServer keeps the raw target-broker
	// state, including "(disabled)" and "(none)".
	DeploymentServer  string   `json:"deployment_server,omitempty"`
	ClusterMasterURIs []string `json:"cluster_master_uris,omitempty"`
	SHCDeployer       string   `json:"shc_deployer,omitempty"`

	// ReceivingPorts lists the splunktcp listening ports forwarders
	// send to.
	ReceivingPorts []int `json:"receiving_ports,omitempty"`

	DiskPartitions []DiskPartition `json:"disk_partitions,omitempty"`
	Messages       []Message       `json:"messages,omitempty"`

	// Health holds evaluated metric statuses keyed by metric name.
	Health map[string]HealthResult `json:"health,omitempty"`

	PolledAt time.Time `json:"polled_at"`
}

// HasRole reports whether the instance participates in the given role.
func (r *InstanceReport) HasRole(role string) bool {
	for _, have := range r.Roles {
		if have == role {
			return true
		}
	}

	return false
}

// DiscoveredNode is a placeholder for an instance seen only as a peer
// reference inside another report, never itself polled.
type DiscoveredNode struct {
	Key       InstanceKey `json:"key"`
	FirstSeen time.Time   `json:"first_seen"`

	// ReportedBy is the instance whose adjacency list introduced this
	// node, kept for tooltips in the rendered topology.
	ReportedBy InstanceKey `json:"reported_by"`
}
