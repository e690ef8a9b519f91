package taint_store

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
)

type FlowKind string

const (
	FlowLabel   FlowKind = "label"
	FlowCopy    FlowKind = "copy"
	FlowCompute FlowKind = "compute"
)

type flowNode struct {
	name string
}

func (n flowNode) ID() int64 {
	h := fnv.New64()
	_, _ = h.Write([]byte(n.name))
	return int64(h.Sum64())
}

func (n flowNode) DOTID() string {
	return n.name
}

func (n flowNode) String() string {
	return n.name
}

type flowLine struct {
	multi.Line
	kind   FlowKind
	labels []string
}

func (l flowLine) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: fmt.Sprintf("%s:%s", l.kind, strings.Join(l.labels, ","))},
	}
}

// FlowGraph records how labels travel: label sources point at the locations
// they were applied to and transfers link the source and destination
// locations. Each distinct edge is recorded once.
type FlowGraph struct {
	graph  *multi.DirectedGraph
	render func(info_flow.Address) string
	seen   map[string]struct{}
}

// NewFlowGraph names locations with render, or in hex when render is nil.
func NewFlowGraph(render func(info_flow.Address) string) *FlowGraph {
	if render == nil {
		render = info_flow.Address.String
	}
	return &FlowGraph{
		graph:  multi.NewDirectedGraph(),
		render: render,
		seen:   make(map[string]struct{}),
	}
}

func (g *FlowGraph) Graph() *multi.DirectedGraph {
	return g.graph
}

func (g *FlowGraph) addLine(from, to flowNode, kind FlowKind, labels []string) {
	if from.name == to.name {
		return
	}
	key := fmt.Sprintf("%s|%s|%s|%s", from.name, to.name, kind, strings.Join(labels, ","))
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = struct{}{}
	g.graph.SetLine(flowLine{
		Line:   g.graph.NewLine(from, to).(multi.Line),
		kind:   kind,
		labels: labels,
	})
}

func (g *FlowGraph) recordLabel(label string, addr info_flow.Address) {
	if g == nil {
		return
	}
	g.addLine(flowNode{name: label}, flowNode{name: g.render(addr)}, FlowLabel, []string{label})
}

func (g *FlowGraph) recordTransfer(src, dst info_flow.Address, labels []string, kind FlowKind) {
	if g == nil || len(labels) == 0 {
		return
	}
	g.addLine(flowNode{name: g.render(src)}, flowNode{name: g.render(dst)}, kind, labels)
}

// Sources lists the label names that reach the location named name.
func (g *FlowGraph) Sources(name string) []string {
	target := flowNode{name: name}
	if g.graph.Node(target.ID()) == nil {
		return nil
	}
	var sources []string
	visited := map[int64]bool{target.ID(): true}
	queue := []int64{target.ID()}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		from := g.graph.To(id)
		for from.Next() {
			n := from.Node()
			if visited[n.ID()] {
				continue
			}
			visited[n.ID()] = true
			if g.graph.To(n.ID()).Len() == 0 {
				sources = append(sources, n.(flowNode).name)
			}
			queue = append(queue, n.ID())
		}
	}
	sort.Strings(sources)
	return sources
}

func (g *FlowGraph) MarshalDOT(name string) ([]byte, error) {
	return dot.MarshalMulti(g.graph, name, "", "")
}
