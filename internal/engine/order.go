package engine

import (
	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

// executionOrder produces a dependency-respecting visiting order for the nodes
// of one type: depth-first post-order, so dependencies are appended before
// their dependents. The visited set doubles as cycle protection — a node
// reached again through a cycle is skipped rather than re-queued, which makes
// cyclic graphs terminate with a deterministic (if input-starved) order.
func (g *Graph) executionOrder(t models.NodeType, deps func(*models.Node) []*models.Node) []*models.Node {
	visited := make(map[string]bool)
	var result []*models.Node

	var visit func(n *models.Node)
	visit = func(n *models.Node) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		for _, dep := range deps(n) {
			visit(dep)
		}
		// Dependencies of other types gate ordering but are not part of
		// this phase's schedule.
		if n.Type == t {
			result = append(result, n)
		}
	}

	for _, n := range g.NodesOfType(t) {
		visit(n)
	}
	return result
}

// OllamaOrder orders ollama nodes. Only edges into the prompt or default
// handle from another ollama node gate ordering; config and systemPrompt
// connections carry static data and do not.
func (g *Graph) OllamaOrder() []*models.Node {
	return g.executionOrder(models.NodeTypeOllama, func(n *models.Node) []*models.Node {
		var deps []*models.Node
		for i := range g.Edges {
			e := &g.Edges[i]
			if e.Target != n.ID {
				continue
			}
			if e.TargetHandle != "prompt" && e.TargetHandle != "" {
				continue
			}
			if src := g.Node(e.Source); src != nil && src.Type == models.NodeTypeOllama {
				deps = append(deps, src)
			}
		}
		return deps
	})
}

// PythonOrder orders python nodes. Any incoming edge from a python, textInput
// or ollama node counts as a dependency.
func (g *Graph) PythonOrder() []*models.Node {
	return g.executionOrder(models.NodeTypePython, func(n *models.Node) []*models.Node {
		var deps []*models.Node
		for i := range g.Edges {
			e := &g.Edges[i]
			if e.Target != n.ID {
				continue
			}
			src := g.Node(e.Source)
			if src == nil {
				continue
			}
			switch src.Type {
			case models.NodeTypePython, models.NodeTypeTextInput, models.NodeTypeOllama:
				deps = append(deps, src)
			}
		}
		return deps
	})
}
