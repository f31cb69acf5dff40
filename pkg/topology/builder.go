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

package topology

import (
	"sort"

	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/models"
)

// Node is one graph vertex: a polled instance or a placeholder for a
// discovered-but-unpolled peer.
type Node struct {
	Key        models.InstanceKey
	Layer      RoleLayer
	Report     *models.InstanceReport // nil for discovered nodes
	Discovered *models.DiscoveredNode // nil for polled instances
}

// Visited reports whether the node was actually polled this run.
func (n *Node) Visited() bool {
	return n.Report != nil
}

// Edge links two instance keys with the relation label reported by
// the adjacency that introduced it.
type Edge struct {
	From     models.InstanceKey
	To       models.InstanceKey
	Relation models.RelationType
}

// Graph is the layered topology handed to a renderer. Nodes within a
// layer and layers themselves are sorted for stable output.
type Graph struct {
	Nodes  []*Node
	Edges  []*Edge
	Layers map[RoleLayer][]*Node
}

// LayerOrder returns the populated layers, topmost first.
func (g *Graph) LayerOrder() []RoleLayer {
	layers := make([]RoleLayer, 0, len(g.Layers))
	for layer := range g.Layers {
		layers = append(layers, layer)
	}

	sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })

	return layers
}

// Builder converts a report set plus placeholders into a Graph.
type Builder struct {
	logger logger.Logger
}

func NewBuilder(log logger.Logger) *Builder {
	return &Builder{logger: log.WithComponent("topology")}
}

// Build assigns every node a layer via the classifier and deduplicates
// edges: an edge already present in either direction between the same
// two keys is not added again, and the first relation label wins.
func (b *Builder) Build(
	reports map[models.InstanceKey]*models.InstanceReport,
	discovered map[models.InstanceKey]*models.DiscoveredNode,
) *Graph {
	graph := &Graph{
		Layers: make(map[RoleLayer][]*Node),
	}

	for key := range reports {
		report := reports[key]
		node := &Node{
			Key:    key,
			Layer:  Classify(report.Roles),
			Report: report,
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	for key := range discovered {
		node := &Node{
			Key:        key,
			Layer:      LayerDiscovered,
			Discovered: discovered[key],
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	// Edge endpoints must resolve to a node; any adjacency target the
	// orchestrator missed becomes a placeholder here.
	known := make(map[models.InstanceKey]struct{}, len(graph.Nodes))
	for _, node := range graph.Nodes {
		known[node.Key] = struct{}{}
	}

	for key := range reports {
		for _, adj := range reports[key].Adjacencies {
			if _, ok := known[adj.Peer]; ok {
				continue
			}

			known[adj.Peer] = struct{}{}
			graph.Nodes = append(graph.Nodes, &Node{
				Key:        adj.Peer,
				Layer:      LayerDiscovered,
				Discovered: &models.DiscoveredNode{Key: adj.Peer, ReportedBy: key},
			})
		}
	}

	sort.Slice(graph.Nodes, func(i, j int) bool {
		return graph.Nodes[i].Key.String() < graph.Nodes[j].Key.String()
	})

	for _, node := range graph.Nodes {
		graph.Layers[node.Layer] = append(graph.Layers[node.Layer], node)
	}

	seen := make(map[[2]string]struct{})

	for _, node := range graph.Nodes {
		if node.Report == nil {
			continue
		}

		for _, adj := range node.Report.Adjacencies {
			pair := edgePair(node.Key, adj.Peer)
			if _, dup := seen[pair]; dup {
				continue
			}

			seen[pair] = struct{}{}
			graph.Edges = append(graph.Edges, &Edge{
				From:     node.Key,
				To:       adj.Peer,
				Relation: adj.Relation,
			})
		}
	}

	sort.Slice(graph.Edges, func(i, j int) bool {
		if graph.Edges[i].From != graph.Edges[j].From {
			return graph.Edges[i].From.String() < graph.Edges[j].From.String()
		}

		return graph.Edges[i].To.String() < graph.Edges[j].To.String()
	})

	b.logger.Info().
		Int("nodes", len(graph.Nodes)).
		Int("edges", len(graph.Edges)).
		Int("layers", len(graph.Layers)).
		Msg("Topology graph built")

	return graph
}

// edgePair normalizes an edge to an unordered key pair.
func edgePair(a, b models.InstanceKey) [2]string {
	as, bs := a.String(), b.String()
	if as > bs {
		as, bs = bs, as
	}

	return [2]string{as, bs}
}
