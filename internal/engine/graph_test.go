package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

func TestNewGraph_ClonesNodeData(t *testing.T) {
	data := models.NodeData{"value": "original"}
	g := NewGraph([]models.Node{node("text-1", models.NodeTypeTextInput, data)}, nil)

	g.Node("text-1").Data["value"] = "mutated"
	assert.Equal(t, "original", data["value"])
}

func TestNewGraph_NilDataBecomesEmptyMap(t *testing.T) {
	g := NewGraph([]models.Node{node("n-1", models.NodeTypeOutput, nil)}, nil)
	require.NotNil(t, g.Node("n-1").Data)
	assert.Equal(t, "", g.Node("n-1").Data.String("text"))
}

func TestIncomingEdge_NamedHandleExactMatch(t *testing.T) {
	nodes := []models.Node{
		node("a", models.NodeTypeTextInput, nil),
		node("b", models.NodeTypeOllama, nil),
	}
	edges := []models.Edge{
		edge("a", "b", "systemPrompt"),
		edge("a", "b", "prompt"),
	}
	g := NewGraph(nodes, edges)

	e := g.IncomingEdge("b", "prompt")
	require.NotNil(t, e)
	assert.Equal(t, "prompt", e.TargetHandle)

	assert.Nil(t, g.IncomingEdge("b", "config"))
}

func TestIncomingEdge_DefaultRuleMatchesUntagged(t *testing.T) {
	nodes := []models.Node{
		node("py", models.NodeTypePython, nil),
		node("b", models.NodeTypeOllama, nil),
	}
	g := NewGraph(nodes, []models.Edge{edge("py", "b", "")})

	e := g.IncomingEdge("b", "")
	require.NotNil(t, e)
	assert.Equal(t, "py", e.Source)
}

func TestIncomingEdge_DefaultRuleMatchesTextInputOnNamedHandle(t *testing.T) {
	// A textInput source satisfies the default-input rule even when its edge
	// carries a named handle.
	nodes := []models.Node{
		node("text-1", models.NodeTypeTextInput, nil),
		node("b", models.NodeTypePython, nil),
	}
	g := NewGraph(nodes, []models.Edge{edge("text-1", "b", "input")})

	e := g.IncomingEdge("b", "")
	require.NotNil(t, e)
	assert.Equal(t, "text-1", e.Source)
}

func TestIncomingEdge_DuplicateEdgesFirstWins(t *testing.T) {
	nodes := []models.Node{
		node("a", models.NodeTypeTextInput, nil),
		node("c", models.NodeTypeTextInput, nil),
		node("b", models.NodeTypeOllama, nil),
	}
	edges := []models.Edge{
		edge("a", "b", "prompt"),
		edge("c", "b", "prompt"),
	}
	g := NewGraph(nodes, edges)

	e := g.IncomingEdge("b", "prompt")
	require.NotNil(t, e)
	assert.Equal(t, "a", e.Source)
}

func TestOutgoingSinkTargets(t *testing.T) {
	nodes := []models.Node{
		node("llm", models.NodeTypeOllama, nil),
		node("out", models.NodeTypeOutput, nil),
		node("file", models.NodeTypeFileWriter, nil),
		node("py", models.NodeTypePython, nil),
	}
	edges := []models.Edge{
		edge("llm", "out", ""),
		edge("llm", "py", ""),
		edge("llm", "file", ""),
		edge("llm", "gone", ""),
	}
	g := NewGraph(nodes, edges)

	assert.Equal(t, []string{"out", "file"}, g.OutgoingSinkTargets("llm"))
}

func TestNodeText_CanonicalFields(t *testing.T) {
	cases := []struct {
		nodeType models.NodeType
		data     models.NodeData
		want     string
	}{
		{models.NodeTypeTextInput, models.NodeData{"value": "v", "text": "ignored"}, "v"},
		{models.NodeTypeOutput, models.NodeData{"text": "t"}, "t"},
		{models.NodeTypePython, models.NodeData{"output": "o", "value": "ignored"}, "o"},
		{models.NodeTypeOllama, models.NodeData{"lastResponse": "r"}, "r"},
		{models.NodeType("custom"), models.NodeData{"text": "probed"}, "probed"},
		{models.NodeType("custom"), models.NodeData{}, ""},
	}
	for _, tc := range cases {
		n := node("n", tc.nodeType, tc.data)
		assert.Equal(t, tc.want, nodeText(&n), "type %s", tc.nodeType)
	}
	assert.Equal(t, "", nodeText(nil))
}

func TestInputText_DanglingEdgeIsNoConnection(t *testing.T) {
	nodes := []models.Node{node("b", models.NodeTypeOllama, nil)}
	g := NewGraph(nodes, []models.Edge{edge("ghost", "b", "prompt")})

	_, ok := g.InputText("b", "prompt", nil)
	assert.False(t, ok)
	assert.Nil(t, g.InputPayload("b", "prompt"))
}

func TestInputText_CachePreferredForExecutableSources(t *testing.T) {
	nodes := []models.Node{
		node("llm", models.NodeTypeOllama, models.NodeData{"lastResponse": "stale"}),
		node("b", models.NodeTypeOllama, nil),
	}
	g := NewGraph(nodes, []models.Edge{edge("llm", "b", "prompt")})

	text, ok := g.InputText("b", "prompt", map[string]string{"llm": "fresh"})
	require.True(t, ok)
	assert.Equal(t, "fresh", text)

	// Without a cache entry the stored payload is all there is.
	text, ok = g.InputText("b", "prompt", map[string]string{})
	require.True(t, ok)
	assert.Equal(t, "stale", text)
}

func TestOllamaOrder_DependenciesFirst(t *testing.T) {
	nodes := []models.Node{
		node("llm-c", models.NodeTypeOllama, nil),
		node("llm-b", models.NodeTypeOllama, nil),
		node("llm-a", models.NodeTypeOllama, nil),
	}
	edges := []models.Edge{
		edge("llm-b", "llm-c", "prompt"),
		edge("llm-a", "llm-b", ""),
	}
	g := NewGraph(nodes, edges)

	order := g.OllamaOrder()
	require.Len(t, order, 3)
	assert.Equal(t, "llm-a", order[0].ID)
	assert.Equal(t, "llm-b", order[1].ID)
	assert.Equal(t, "llm-c", order[2].ID)
}

func TestOllamaOrder_ConfigEdgesDoNotGate(t *testing.T) {
	nodes := []models.Node{
		node("llm-a", models.NodeTypeOllama, nil),
		node("llm-b", models.NodeTypeOllama, nil),
	}
	// A systemPrompt connection between generators is static data, not a
	// scheduling dependency.
	g := NewGraph(nodes, []models.Edge{edge("llm-b", "llm-a", "systemPrompt")})

	order := g.OllamaOrder()
	require.Len(t, order, 2)
	assert.Equal(t, "llm-a", order[0].ID)
}

func TestOllamaOrder_CycleTerminates(t *testing.T) {
	nodes := []models.Node{
		node("llm-a", models.NodeTypeOllama, nil),
		node("llm-b", models.NodeTypeOllama, nil),
	}
	edges := []models.Edge{
		edge("llm-a", "llm-b", "prompt"),
		edge("llm-b", "llm-a", "prompt"),
	}
	g := NewGraph(nodes, edges)

	order := g.OllamaOrder()
	require.Len(t, order, 2)
	seen := map[string]bool{}
	for _, n := range order {
		assert.False(t, seen[n.ID], "node %s visited twice", n.ID)
		seen[n.ID] = true
	}
}

func TestPythonOrder_OnlyPythonNodesScheduled(t *testing.T) {
	nodes := []models.Node{
		node("py-b", models.NodeTypePython, nil),
		node("py-a", models.NodeTypePython, nil),
		node("text-1", models.NodeTypeTextInput, nil),
	}
	edges := []models.Edge{
		edge("py-a", "py-b", ""),
		edge("text-1", "py-a", "input"),
	}
	g := NewGraph(nodes, edges)

	order := g.PythonOrder()
	require.Len(t, order, 2)
	assert.Equal(t, "py-a", order[0].ID)
	assert.Equal(t, "py-b", order[1].ID)
}
