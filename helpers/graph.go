package helpers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	gonumGraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
)

type IterableGraph interface {
	gonumGraph.Graph
	Edges() gonumGraph.Edges
}

func nodeName(node gonumGraph.Node) string {
	if stringer, ok := node.(fmt.Stringer); ok {
		return stringer.String()
	}
	return strconv.FormatInt(node.ID(), 10)
}

func edgeLabel(e interface{}) string {
	attributer, ok := e.(encoding.Attributer)
	if !ok {
		return ""
	}
	for _, attr := range attributer.Attributes() {
		if attr.Key == "label" {
			return attr.Value
		}
	}
	return ""
}

// ToGraphvizDot lays out graph with graphviz and returns the result in dot
// format. Every line of a multigraph becomes its own edge, labelled by the
// line's "label" attribute when it has one.
func ToGraphvizDot(graph IterableGraph) (out []byte, err error) {
	G := graphviz.New()
	g, err := G.Graph()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := g.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if cerr := G.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	nodes := make(map[int64]*cgraph.Node)
	nodeIter := graph.Nodes()
	for nodeIter.Next() {
		node := nodeIter.Node()
		n, err := g.CreateNode(nodeName(node))
		if err != nil {
			return nil, err
		}
		nodes[node.ID()] = n
	}

	count := 0
	addEdge := func(from, to gonumGraph.Node, label string) error {
		count++
		e, err := g.CreateEdge(strconv.Itoa(count), nodes[from.ID()], nodes[to.ID()])
		if err != nil {
			return err
		}
		if label != "" {
			e.SetLabel(label)
		}
		return nil
	}
	edgeIter := graph.Edges()
	for edgeIter.Next() {
		edge := edgeIter.Edge()
		lines, ok := edge.(gonumGraph.Lines)
		if !ok {
			if err := addEdge(edge.From(), edge.To(), edgeLabel(edge)); err != nil {
				return nil, err
			}
			continue
		}
		for lines.Next() {
			line := lines.Line()
			if err := addEdge(line.From(), line.To(), edgeLabel(line)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := G.Render(g, "dot", &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
