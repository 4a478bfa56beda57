package engine

import (
	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

// Graph is the engine's private snapshot of the canvas state for one run.
// Node payloads are cloned on construction so executor patches never alias the
// caller's slices.
type Graph struct {
	Nodes []models.Node
	Edges []models.Edge

	byID map[string]*models.Node
}

func NewGraph(nodes []models.Node, edges []models.Edge) *Graph {
	g := &Graph{
		Nodes: make([]models.Node, len(nodes)),
		Edges: make([]models.Edge, len(edges)),
		byID:  make(map[string]*models.Node, len(nodes)),
	}
	copy(g.Edges, edges)
	for i, n := range nodes {
		n.Data = n.Data.Clone()
		if n.Data == nil {
			n.Data = models.NodeData{}
		}
		g.Nodes[i] = n
	}
	for i := range g.Nodes {
		g.byID[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return g
}

// Node returns the node with the given id, or nil. Edges referencing unknown
// ids resolve to nil sources and are treated as "no connection".
func (g *Graph) Node(id string) *models.Node {
	return g.byID[id]
}

// NodesOfType returns the nodes of one type in submission order.
func (g *Graph) NodesOfType(t models.NodeType) []*models.Node {
	var out []*models.Node
	for i := range g.Nodes {
		if g.Nodes[i].Type == t {
			out = append(out, &g.Nodes[i])
		}
	}
	return out
}

// IncomingEdge finds the edge feeding target on the named handle. With an empty
// handle it applies the default-input rule: an edge with no target handle, or
// any edge whose source is a textInput node (textInput is the implicit default
// producer for untagged connections).
//
// When several edges match the same (target, handle) pair the first one in edge
// slice order wins; the canvas is expected to connect at most one.
func (g *Graph) IncomingEdge(target, handle string) *models.Edge {
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Target != target {
			continue
		}
		if handle != "" {
			if e.TargetHandle == handle {
				return e
			}
			continue
		}
		if e.TargetHandle == "" {
			return e
		}
		if src := g.Node(e.Source); src != nil && src.Type == models.NodeTypeTextInput {
			return e
		}
	}
	return nil
}

// OutgoingSinkTargets returns the ids of sink nodes (output viewers and file
// writers) directly connected downstream of source, in edge slice order.
func (g *Graph) OutgoingSinkTargets(source string) []string {
	var targets []string
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Source != source {
			continue
		}
		if dst := g.Node(e.Target); dst != nil && dst.Type.IsSink() {
			targets = append(targets, e.Target)
		}
	}
	return targets
}
