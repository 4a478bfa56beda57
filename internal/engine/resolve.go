package engine

import (
	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

// canonicalTextField maps each node type to the payload field holding its
// primary text. Types without an entry fall back to the probe chain below,
// which exists for nodes imported from older saved workflows.
var canonicalTextField = map[models.NodeType]string{
	models.NodeTypeTextInput: "value",
	models.NodeTypeOutput:    "text",
	models.NodeTypePython:    "output",
	models.NodeTypeOllama:    "lastResponse",
}

var textProbeFields = []string{"value", "text", "output", "lastResponse"}

// nodeText extracts a node's primary text from its payload.
func nodeText(n *models.Node) string {
	if n == nil {
		return ""
	}
	if field, ok := canonicalTextField[n.Type]; ok {
		return n.Data.String(field)
	}
	for _, field := range textProbeFields {
		if v := n.Data.String(field); v != "" {
			return v
		}
	}
	return ""
}

// InputPayload returns the full data payload of the node feeding target on the
// given handle, or nil when nothing is connected. Absence is a normal state;
// executors apply their own defaults.
func (g *Graph) InputPayload(target, handle string) models.NodeData {
	edge := g.IncomingEdge(target, handle)
	if edge == nil {
		return nil
	}
	src := g.Node(edge.Source)
	if src == nil {
		return nil
	}
	return src.Data
}

// InputText resolves the text feeding target on the given handle. When the
// source is an executable node with a result already in cache, the cached
// result wins over the node's stored payload, so chained ollama→ollama or
// python→ollama links pick up computed text rather than stale initial data.
func (g *Graph) InputText(target, handle string, cache map[string]string) (string, bool) {
	edge := g.IncomingEdge(target, handle)
	if edge == nil {
		return "", false
	}
	src := g.Node(edge.Source)
	if src == nil {
		return "", false
	}
	if src.Type.IsExecutable() {
		if cached, ok := cache[src.ID]; ok {
			return cached, true
		}
	}
	return nodeText(src), true
}
