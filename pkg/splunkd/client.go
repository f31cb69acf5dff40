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
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
)

const (
	pathServerInfo       = "/services/server/info"
	pathDistributedPeers = "/services/search/distributed/peers"
	pathDeploymentTarget = "/services/properties/deploymentclient/target-broker:deploymentServer"
	pathClusterConfig    = "/services/cluster/config"
	pathClusterPeers     = "/services/cluster/master/peers"
	pathSHClusterConfig  = "/services/shcluster/config"
	pathTCPInputs        = "/services/data/inputs/tcp/cooked"
	pathPartitionsSpace  = "/services/server/status/partitions-space"
	pathResourceUsage    = "/services/server/status/resource-usage/hostwide"
	pathMessages         = "/services/messages"
)

// HTTPConnector dials splunkd management ports over HTTPS.
type HTTPConnector struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	Logger             logger.Logger
}

// NewHTTPConnector creates a connector with the given per-call timeout.
func NewHTTPConnector(timeout time.Duration, insecureSkipVerify bool, log logger.Logger) *HTTPConnector {
	return &HTTPConnector{
		Timeout:            timeout,
		InsecureSkipVerify: insecureSkipVerify,
		Logger:             log,
	}
}

// Connect verifies reachability and credentials with a server/info
// call and returns a bound client. A transport failure maps to
// ErrConnect, a 401/403 to ErrAuth.
func (c *HTTPConnector) Connect(ctx context.Context, key models.InstanceKey, creds models.Credentials) (Client, error) {
	client := &httpClient{
		baseURL: fmt.Sprintf("https://%s:%d", key.Host, key.Port),
		creds:   creds,
		logger:  c.Logger.WithComponent("splunkd"),
		http: &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: c.InsecureSkipVerify}, //nolint:gosec // splunkd default cert is self-signed
			},
		},
	}

	if _, err := client.get(ctx, pathServerInfo); err != nil {
		return nil, err
	}

	return client, nil
}

type httpClient struct {
	baseURL string
	creds   models.Credentials
	http    *http.Client
	logger  logger.Logger
}

// get issues one management GET with output_mode=json and classifies
// transport, auth, and HTTP failures into the package error taxonomy.
func (c *httpClient) get(ctx context.Context, path string) ([]byte, error) {
	u := fmt.Sprintf("%s%s?output_mode=json&count=-1", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	req.SetBasicAuth(c.creds.Username, c.creds.Password)

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts are treated identically to transport failures.
		return nil, fmt.Errorf("%w: %s: %w", ErrConnect, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFetch, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s returned %d", ErrAuth, path, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, path, resp.StatusCode)
	}

	return body, nil
}

// fetch runs get and unmarshals the standard entry envelope.
func (c *httpClient) fetch(ctx context.Context, path string) (*apiResponse, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	return &resp, nil
}

func (c *httpClient) Identity(ctx context.Context) (*models.ServerInfo, []string, error) {
	resp, err := c.fetch(ctx, pathServerInfo)
	if err != nil {
		return nil, nil, err
	}

	if len(resp.Entry) == 0 {
		return nil, nil, fmt.Errorf("%w: %s returned no entries", ErrParse, pathServerInfo)
	}

	var content serverInfoContent
	if err := json.Unmarshal(resp.Entry[0].Content, &content); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrParse, pathServerInfo, err)
	}

	osName := content.OSNameExtended
	if osName == "" {
		osName = content.OSName
	}

	info := &models.ServerInfo{
		ServerName:  content.ServerName,
		GUID:        content.GUID,
		Version:     content.Version,
		ProductType: content.ProductType,
		OS:          strings.TrimSpace(osName + " " + content.CPUArch),
		StartupTime: content.StartupTime,
		Cores:       content.NumberOfCores,
		RAMMB:       content.PhysicalMemoryMB,
	}

	return info, content.ServerRoles, nil
}

func (c *httpClient) SearchPeers(ctx context.Context) ([]string, error) {
	resp, err := c.fetch(ctx, pathDistributedPeers)
	if err != nil {
		return nil, err
	}

	peers := make([]string, 0, len(resp.Entry))

	for i := range resp.Entry {
		// Entry name is the peer's host:mgmtport pair.
		if resp.Entry[i].Name != "" {
			peers = append(peers, resp.Entry[i].Name)
		}
	}

	return peers, nil
}

func (c *httpClient) DeploymentInfo(ctx context.Context) (*DeploymentInfo, error) {
	disabledBody, err := c.get(ctx, pathDeploymentTarget+"/disabled")
	if err != nil {
		return nil, err
	}

	info := &DeploymentInfo{
		Disabled: strings.TrimSpace(string(disabledBody)) == "1",
	}

	targetBody, err := c.get(ctx, pathDeploymentTarget+"/targetUri")
	if err != nil {
		// No stanza means not a deployment client, not a failure.
		return info, nil
	}

	target := strings.TrimSpace(string(targetBody))
	if target != "" && !strings.HasPrefix(target, "{") {
		info.TargetURI = target
	}

	return info, nil
}

func (c *httpClient) ClusterInfo(ctx context.Context) (*ClusterInfo, error) {
	info := &ClusterInfo{}

	resp, err := c.fetch(ctx, pathClusterConfig)
	if err != nil {
		return nil, err
	}

	if len(resp.Entry) > 0 {
		var content clusterConfigContent
		if err := json.Unmarshal(resp.Entry[0].Content, &content); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, pathClusterConfig, err)
		}

		info.Mode = content.Mode
		info.Label = content.Label

		// Multi-site masters arrive as a comma-separated list.
		for _, part := range strings.Split(content.MasterURI, ",") {
			part = strings.TrimSpace(part)
			if part != "" && part != "?" {
				info.MasterURIs = append(info.MasterURIs, part)
			}
		}
	}

	if info.Mode == "master" {
		if peers, err := c.fetch(ctx, pathClusterPeers); err == nil {
			for i := range peers.Entry {
				var content clusterPeerContent
				if err := json.Unmarshal(peers.Entry[i].Content, &content); err != nil {
					continue
				}

				if content.HostPortPair != "" {
					info.PeerURIs = append(info.PeerURIs, content.HostPortPair)
				}
			}
		}
	}

	if shc, err := c.fetch(ctx, pathSHClusterConfig); err == nil && len(shc.Entry) > 0 {
		var content shclusterConfigContent
		if err := json.Unmarshal(shc.Entry[0].Content, &content); err == nil {
			info.SHCDeployer = content.ConfDeployFetchURL
		}
	}

	return info, nil
}

func (c *httpClient) ReceivingPorts(ctx context.Context) ([]int, error) {
	resp, err := c.fetch(ctx, pathTCPInputs)
	if err != nil {
		return nil, err
	}

	ports := make([]int, 0, len(resp.Entry))

	for i := range resp.Entry {
		// Entry name is the listening port, sometimes "host:port".
		name := resp.Entry[i].Name
		if j := strings.LastIndexByte(name, ':'); j >= 0 {
			name = name[j+1:]
		}

		if port, err := strconv.Atoi(name); err == nil && port > 0 {
			ports = append(ports, port)
		}
	}

	sort.Ints(ports)

	return ports, nil
}

func (c *httpClient) HostStats(ctx context.Context) (*HostStats, error) {
	resp, err := c.fetch(ctx, pathPartitionsSpace)
	if err != nil {
		return nil, err
	}

	stats := &HostStats{}

	for i := range resp.Entry {
		var content partitionContent
		if err := json.Unmarshal(resp.Entry[i].Content, &content); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, pathPartitionsSpace, err)
		}

		capacity, _ := content.Capacity.Float64()
		free, _ := content.Free.Float64()

		var usedPct float64
		if capacity > 0 {
			usedPct = (capacity - free) / capacity * 100
		}

		stats.Partitions = append(stats.Partitions, models.DiskPartition{
			Name:        content.MountPoint,
			Type:        content.FSType,
			PercentUsed: usedPct,
			FreeMB:      free,
		})
	}

	if usage, err := c.fetch(ctx, pathResourceUsage); err == nil && len(usage.Entry) > 0 {
		var content resourceUsageContent
		if err := json.Unmarshal(usage.Entry[0].Content, &content); err == nil {
			stats.Resources = resourcesFromContent(&content)
		}
	}

	return stats, nil
}

func resourcesFromContent(content *resourceUsageContent) *ResourceUsage {
	usage := &ResourceUsage{}

	sys, _ := content.CPUPct.Float64()
	user, _ := content.CPUUserPct.Float64()
	usage.CPUUsagePct = sys + user

	if total, _ := content.MemTotalMB.Float64(); total > 0 {
		used, _ := content.MemUsedMB.Float64()
		usage.MemUsagePct = used / total * 100
	}

	if total, _ := content.SwapTotalMB.Float64(); total > 0 {
		used, _ := content.SwapUsedMB.Float64()
		usage.SwapUsagePct = used / total * 100
	}

	return usage
}

func (c *httpClient) Messages(ctx context.Context) ([]models.Message, error) {
	resp, err := c.fetch(ctx, pathMessages)
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(resp.Entry))

	for i := range resp.Entry {
		var content messageContent
		if err := json.Unmarshal(resp.Entry[i].Content, &content); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParse, pathMessages, err)
		}

		msg := models.Message{
			Severity:    strings.ToUpper(content.Severity),
			Title:       resp.Entry[i].Name,
			Description: content.Message,
		}

		if epoch, err := content.TimeCreatedEpoch.Int64(); err == nil && epoch > 0 {
			msg.Created = time.Unix(epoch, 0)
		}

		messages = append(messages, msg)
	}

	return messages, nil
}
