package request

import "github.com/davy1ex/pipelineLLM/internal/api/models"

// ExecuteWorkflow is the engine boundary input: the canvas snapshot plus
// optional connection defaults for ollama nodes with no settings attached.
type ExecuteWorkflow struct {
	Nodes        []models.Node `json:"nodes" validate:"required,dive"`
	Edges        []models.Edge `json:"edges" validate:"dive"`
	DefaultUrl   string        `json:"defaultUrl"`
	DefaultModel string        `json:"defaultModel"`
}
