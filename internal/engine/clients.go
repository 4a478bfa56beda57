package engine

import "context"

// GenerateRequest is the contract with the text-generation collaborator
// (an Ollama-compatible service in the current deployment).
type GenerateRequest struct {
	URL         string
	Model       string
	Prompt      string
	System      string
	Temperature float64
}

type GenerateResponse struct {
	Response string
	Model    string
	Done     bool
}

// TextGenerator is the external text-generation service the ollama phase
// calls. Failures here are fatal to the run.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// CodeResult is the contract with the code-execution collaborator.
type CodeResult struct {
	Output string
	Stdout string
	Stderr string
	Error  string
}

// EffectiveOutput is the runner's declared output, or captured stdout when no
// explicit output was set.
func (r CodeResult) EffectiveOutput() string {
	if r.Output != "" {
		return r.Output
	}
	return r.Stdout
}

// EffectiveError is the runner's declared error, or captured stderr.
func (r CodeResult) EffectiveError() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Stderr
}

// CodeRunner is the external code-execution service the python phase calls.
// Failures here are recoverable: they are recorded on the node and the run
// continues.
type CodeRunner interface {
	Run(ctx context.Context, code string) (CodeResult, error)
}
