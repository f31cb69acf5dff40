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

// Package splunkd is the client for the splunkd management REST API
// (HTTPS on the management port, basic auth, output_mode=json).
package splunkd

import (
	"context"

	"github.com/splunktools/splunkscope/pkg/models"
)

// Connector dials one instance. Connect performs the initial
// connectivity and authentication check; if it fails, no fact calls
// are attempted for that instance.
type Connector interface {
	Connect(ctx context.Context, key models.InstanceKey, creds models.Credentials) (Client, error)
}

// Client exposes the fact categories gathered from one connected
// instance. Each call fails independently with ErrFetch or ErrParse
// without invalidating the client.
type Client interface {
	// Identity returns the server identity block and the set of
	// participating server roles.
	Identity(ctx context.Context) (*models.ServerInfo, []string, error)

	// SearchPeers returns the distributed-search peers this instance
	// references.
	SearchPeers(ctx context.Context) ([]string, error)

	// DeploymentInfo returns the deployment-client target broker
	// state.
	DeploymentInfo(ctx context.Context) (*DeploymentInfo, error)

	// ClusterInfo returns indexer-cluster and search-head-cluster
	// membership facts.
	ClusterInfo(ctx context.Context) (*ClusterInfo, error)

	// ReceivingPorts returns the cooked TCP listening ports, the ports
	// forwarders send to.
	ReceivingPorts(ctx context.Context) ([]int, error)

	// HostStats returns disk partitions and host resource usage from
	// the server/status endpoints.
	HostStats(ctx context.Context) (*HostStats, error)

	// Messages returns the splunkd banner messages.
	Messages(ctx context.Context) ([]models.Message, error)
}
