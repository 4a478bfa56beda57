package response

import "github.com/davy1ex/pipelineLLM/internal/api/models"

type ExecuteWorkflow struct {
	OllamaResponse string            `json:"ollamaResponse"`
	OutputNodeId   string            `json:"outputNodeId,omitempty"`
	OutputUpdates  map[string]string `json:"outputUpdates"`
	NodeResults    map[string]string `json:"nodeResults"`
	// Nodes carries the patched payloads (lastResponse, output, lastError)
	// back to the canvas.
	Nodes []models.Node `json:"nodes"`
}
