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

	"github.com/stretchr/testify/mock"

	"github.com/splunktools/splunkscope/pkg/models"
	"github.com/splunktools/splunkscope/pkg/splunkd"
)

type mockConnector struct {
	mock.Mock
}

func (m *mockConnector) Connect(
	ctx context.Context, key models.InstanceKey, creds models.Credentials) (splunkd.Client, error) {
	args := m.Called(ctx, key, creds)
	if client := args.Get(0); client != nil {
		return client.(splunkd.Client), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Identity(ctx context.Context) (*models.ServerInfo, []string, error) {
	args := m.Called(ctx)
	if info := args.Get(0); info != nil {
		return info.(*models.ServerInfo), args.Get(1).([]string), args.Error(2)
	}

	return nil, nil, args.Error(2)
}

func (m *mockClient) SearchPeers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if peers := args.Get(0); peers != nil {
		return peers.([]string), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockClient) DeploymentInfo(ctx context.Context) (*splunkd.DeploymentInfo, error) {
	args := m.Called(ctx)
	if info := args.Get(0); info != nil {
		return info.(*splunkd.DeploymentInfo), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockClient) ClusterInfo(ctx context.Context) (*splunkd.ClusterInfo, error) {
	args := m.Called(ctx)
	if info := args.Get(0); info != nil {
		return info.(*splunkd.ClusterInfo), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockClient) ReceivingPorts(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if ports := args.Get(0); ports != nil {
		return ports.([]int), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockClient) HostStats(ctx context.Context) (*splunkd.HostStats, error) {
	args := m.Called(ctx)
	if stats := args.Get(0); stats != nil {
		return stats.(*splunkd.HostStats), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockClient) Messages(ctx context.Context) ([]models.Message, error) {
	args := m.Called(ctx)
	if msgs := args.Get(0); msgs != nil {
		return msgs.([]models.Message), args.Error(1)
	}

	return nil, args.Error(1)
}

// newHealthyClient returns a client mock with every fact call stubbed
// to an empty success.
func newHealthyClient() *mockClient {
	client := &mockClient{}
	stubFacts(client)

	return client
}

// stubFacts stubs every fact call to an empty success. Expectations
// registered before this call take precedence, so failure tests set
// their failing call first and then fill in the rest.
func stubFacts(client *mockClient) {
	client.On("Identity", mock.Anything).Return(&models.ServerInfo{}, []string{}, nil).Maybe()
	client.On("SearchPeers", mock.Anything).Return([]string{}, nil).Maybe()
	client.On("DeploymentInfo", mock.Anything).Return(&splunkd.DeploymentInfo{}, nil).Maybe()
	client.On("ClusterInfo", mock.Anything).Return(&splunkd.ClusterInfo{}, nil).Maybe()
	client.On("ReceivingPorts", mock.Anything).Return([]int{}, nil).Maybe()
	client.On("HostStats", mock.Anything).Return(&splunkd.HostStats{}, nil).Maybe()
	client.On("Messages", mock.Anything).Return([]models.Message{}, nil).Maybe()
}
