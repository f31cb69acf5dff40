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
	"fmt"
	"io"
	"strings"

	"github.com/splunktools/splunkscope/pkg/config"
	"github.com/splunktools/splunkscope/pkg/models"
)

// WriteDOT renders the graph as Graphviz DOT, one rank per populated
// layer, topmost layer first. Node fill color tracks the poll outcome
// from the styling config; discovered nodes render dashed.
func WriteDOT(w io.Writer, graph *Graph, style *config.TopologyConfig) error {
	var sb strings.Builder

	sb.WriteString("graph splunkscope {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")

	for _, layer := range graph.LayerOrder() {
		fmt.Fprintf(&sb, "  subgraph \"cluster_%d\" {\n", int(layer))
		fmt.Fprintf(&sb, "    label=%q;\n", layer.String())
		sb.WriteString("    rank=same;\n")

		for _, node := range graph.Layers[layer] {
			writeNode(&sb, node, style)
		}

		sb.WriteString("  }\n")
	}

	for _, edge := range graph.Edges {
		fmt.Fprintf(&sb, "  %q -- %q [label=%q];\n",
			edge.From.String(), edge.To.String(), string(edge.Relation))
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())

	return err
}

func writeNode(sb *strings.Builder, node *Node, style *config.TopologyConfig) {
	label := node.Key.String()
	color := style.DiscoveredColor
	attrs := ""

	if node.Report != nil {
		if name := serverName(node.Report); name != "" {
			label = fmt.Sprintf("%s\\n%s", name, node.Key.String())
		}

		switch node.Report.Outcome {
		case models.PollSuccess:
			color = style.SuccessColor
		case models.PollPartial:
			color = style.PartialColor
		case models.PollFailed:
			color = style.FailedColor
		}

		if node.Report.Error != "" {
			attrs = fmt.Sprintf(", tooltip=%q", node.Report.Error)
		}
	} else {
		label = fmt.Sprintf("%s\\n(unvisited)", node.Key.String())
		attrs = ", style=\"filled,dashed\""
	}

	// Labels carry Graphviz \n escapes, so they are quoted verbatim
	// rather than through %q.
	fmt.Fprintf(sb, "    \"%s\" [label=\"%s\", fillcolor=\"%s\"%s];\n",
		node.Key.String(), label, color, attrs)
}

func serverName(report *models.InstanceReport) string {
	if report.Info == nil {
		return ""
	}

	return report.Info.ServerName
}
