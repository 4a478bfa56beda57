package request

type OllamaChat struct {
	Url         string   `json:"url"`
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt" validate:"required"`
	System      string   `json:"system"`
	Temperature *float64 `json:"temperature"`
}
