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

// Package topology infers a layered graph from a discovery run's
// report set.
package topology

import "github.com/splunktools/splunkscope/pkg/models"

// RoleLayer orders topology rows top to bottom. Layer 0 renders
// topmost; LayerDiscovered sorts after every classified layer.
type RoleLayer int

const (
	LayerManagementConsole RoleLayer = iota
	LayerSHCDeployer
	LayerStandaloneSearchHead
	LayerLicenseMaster
	LayerDeploymentServer
	LayerSearchHead
	LayerClusterMaster
	LayerIndexer
	LayerHeavyForwarder
	LayerUniversalForwarder
	LayerInputInstance
	LayerOther
	LayerDiscovered
)

var layerNames = map[RoleLayer]string{
	LayerManagementConsole:    "Management Console",
	LayerSHCDeployer:          "SHC Deployer",
	LayerStandaloneSearchHead: "Standalone Search Head",
	LayerLicenseMaster:        "License Master",
	LayerDeploymentServer:     "Deployment Server",
	LayerSearchHead:           "Search Head",
	LayerClusterMaster:        "Cluster Master",
	LayerIndexer:              "Indexer",
	LayerHeavyForwarder:       "Heavy Forwarder",
	LayerUniversalForwarder:   "Universal Forwarder",
	LayerInputInstance:        "Input Instance",
	LayerOther:                "Other",
	LayerDiscovered:           "Discovered Node",
}

func (l RoleLayer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}

	return "Unknown"
}

type roleSet map[string]struct{}

func (s roleSet) has(roles ...string) bool {
	for _, role := range roles {
		if _, ok := s[role]; ok {
			return true
		}
	}

	return false
}

// classifierRule pairs a layer with its membership predicate. The
// table is walked in order and the first match wins, which keeps the
// policy declarative and the classification deterministic.
type classifierRule struct {
	layer RoleLayer
	match func(roleSet) bool
}

var classifierRules = []classifierRule{
	{LayerManagementConsole, func(s roleSet) bool {
		return s.has(models.RoleManagementConsole)
	}},
	{LayerSHCDeployer, func(s roleSet) bool {
		return s.has(models.RoleSHCDeployer)
	}},
	{LayerStandaloneSearchHead, func(s roleSet) bool {
		return s.has(models.RoleSearchHead) &&
			!s.has(models.RoleSHCMember, models.RoleSHCCaptain, models.RoleClusterSearchHead)
	}},
	{LayerLicenseMaster, func(s roleSet) bool {
		return s.has(models.RoleLicenseMaster)
	}},
	{LayerDeploymentServer, func(s roleSet) bool {
		return s.has(models.RoleDeploymentServer)
	}},
	{LayerSearchHead, func(s roleSet) bool {
		return s.has(models.RoleSearchHead, models.RoleSHCMember, models.RoleSHCCaptain, models.RoleClusterSearchHead)
	}},
	{LayerClusterMaster, func(s roleSet) bool {
		return s.has(models.RoleClusterMaster)
	}},
	{LayerIndexer, func(s roleSet) bool {
		return s.has(models.RoleIndexer, models.RoleClusterSlave)
	}},
	{LayerHeavyForwarder, func(s roleSet) bool {
		return s.has(models.RoleHeavyForwarder)
	}},
	{LayerUniversalForwarder, func(s roleSet) bool {
		return s.has(models.RoleUniversalForwarder, models.RoleLightweightForwader)
	}},
	{LayerInputInstance, func(s roleSet) bool {
		return s.has(models.RoleDeploymentClient)
	}},
}

// Classify returns the role layer for a role set. It is a pure
// function: the same set always yields the same layer regardless of
// slice order. An empty set yields LayerDiscovered.
func Classify(roles []string) RoleLayer {
	if len(roles) == 0 {
		return LayerDiscovered
	}

	set := make(roleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}

	for _, rule := range classifierRules {
		if rule.match(set) {
			return rule.layer
		}
	}

	return LayerOther
}
