package models

type NodeType string

const (
	NodeTypeTextInput  NodeType = "textInput"
	NodeTypeSettings   NodeType = "settings"
	NodeTypeOllama     NodeType = "ollama"
	NodeTypePython     NodeType = "python"
	NodeTypeOutput     NodeType = "output"
	NodeTypeFileWriter NodeType = "fileWriter"
)

// IsSink reports whether the type only consumes upstream text (output viewer, file writer).
func (t NodeType) IsSink() bool {
	return t == NodeTypeOutput || t == NodeTypeFileWriter
}

// IsExecutable reports whether the type has an execution phase of its own.
func (t NodeType) IsExecutable() bool {
	return t == NodeTypeOllama || t == NodeTypePython
}

// NodeData is the free-form payload the canvas attaches to a node.
// Field names are type-specific (ollama: model, url, prompt, systemPrompt,
// temperature, lastResponse; python: code, output, lastError; textInput: value;
// output: text; settings: url, model, temperature).
type NodeData map[string]any

// String returns the value under key when it is a non-empty string.
func (d NodeData) String(key string) string {
	if d == nil {
		return ""
	}
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// Float returns the numeric value under key. The second return value is false
// when the key is absent or not a number, so callers can distinguish an explicit
// zero from a missing field.
func (d NodeData) Float(key string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	switch v := d[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Clone returns a shallow copy of the payload map. Nested values are shared;
// executors only ever write top-level string fields.
func (d NodeData) Clone() NodeData {
	if d == nil {
		return nil
	}
	clone := make(NodeData, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}

// Apply merges a patch into the payload. A nil patch value deletes the key.
func (d NodeData) Apply(patch NodeData) {
	for k, v := range patch {
		if v == nil {
			delete(d, k)
			continue
		}
		d[k] = v
	}
}

// Node is one unit of the workflow graph as the canvas submits it.
type Node struct {
	ID   string   `json:"id" validate:"required"`
	Type NodeType `json:"type"`
	Data NodeData `json:"data"`
}

// Edge is a directed connection between two nodes. An empty TargetHandle marks
// the node's default input.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source" validate:"required"`
	Target       string `json:"target" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}
