package engine

import (
	"context"
	"fmt"

	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

// ollamaInputs is the transient resolved-input record for one ollama node
// execution, rebuilt fresh every pass.
type ollamaInputs struct {
	prompt      string
	system      string
	url         string
	model       string
	temperature float64
}

// untaggedEdge finds the first edge into target with no target handle. Unlike
// the generic default-input rule this does not special-case textInput sources:
// a textInput wired to a named handle must not leak into the prompt.
func (g *Graph) untaggedEdge(target string) *models.Edge {
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Target == target && e.TargetHandle == "" {
			return e
		}
	}
	return nil
}

// edgeText extracts the text carried by an edge: the source's cached result
// when the source is executable and already computed, else its stored payload.
func (g *Graph) edgeText(e *models.Edge, cache map[string]string) string {
	src := g.Node(e.Source)
	if src == nil {
		return ""
	}
	if src.Type.IsExecutable() {
		if cached, ok := cache[src.ID]; ok {
			return cached
		}
	}
	return nodeText(src)
}

// resolveOllamaInputs builds the effective inputs for one ollama node:
// prompt from the prompt handle, then the untagged edge, then the node's own
// stored prompt; system prompt from its handle with the node's own field as
// fallback; and
// url/model/temperature from a connected settings node with node data and
// caller defaults as fallbacks.
func (r *Runner) resolveOllamaInputs(node *models.Node) ollamaInputs {
	in := ollamaInputs{}

	promptEdge := r.graph.IncomingEdge(node.ID, "prompt")
	if promptEdge == nil {
		promptEdge = r.graph.untaggedEdge(node.ID)
	}
	if promptEdge != nil {
		in.prompt = r.graph.edgeText(promptEdge, r.cache)
	}
	if in.prompt == "" {
		in.prompt = node.Data.String("prompt")
	}

	if e := r.graph.IncomingEdge(node.ID, "systemPrompt"); e != nil {
		if src := r.graph.Node(e.Source); src != nil {
			in.system = nodeText(src)
		}
	}
	if in.system == "" {
		in.system = node.Data.String("systemPrompt")
	}

	if config := r.graph.InputPayload(node.ID, "config"); config != nil {
		// A connected settings node overrides the node's own connection
		// fields entirely; only temperature falls through.
		in.url = config.String("url")
		if in.url == "" {
			in.url = fallbackURL
		}
		in.model = config.String("model")
		if in.model == "" {
			in.model = fallbackModel
		}
		if t, ok := config.Float("temperature"); ok {
			in.temperature = t
		} else if t, ok := node.Data.Float("temperature"); ok {
			in.temperature = t
		} else {
			in.temperature = defaultTemperature
		}
		return in
	}

	in.url = node.Data.String("url")
	if in.url == "" {
		in.url = r.opts.DefaultURL
	}
	if in.url == "" {
		in.url = fallbackURL
	}
	in.model = node.Data.String("model")
	if in.model == "" {
		in.model = r.opts.DefaultModel
	}
	if in.model == "" {
		in.model = fallbackModel
	}
	if t, ok := node.Data.Float("temperature"); ok {
		in.temperature = t
	} else {
		in.temperature = defaultTemperature
	}
	return in
}

// runOllamaPhase executes every ollama node in dependency order. A node with
// an empty resolved prompt aborts the whole run before any service call for
// it; a generation service failure aborts as well. Results already applied by
// earlier nodes and passes stay applied.
func (r *Runner) runOllamaPhase(ctx context.Context) ([]*models.Node, error) {
	order := r.graph.OllamaOrder()

	for _, node := range order {
		in := r.resolveOllamaInputs(node)
		if in.prompt == "" {
			return nil, fmt.Errorf("prompt is required for ollama node %s", node.ID)
		}

		r.notifyNodeStart(node)
		r.log.Info().
			Str("nodeId", node.ID).
			Str("model", in.model).
			Int("promptLen", len(in.prompt)).
			Bool("hasSystemPrompt", in.system != "").
			Msg("Calling ollama node")

		resp, err := r.generator.Generate(ctx, GenerateRequest{
			URL:         in.url,
			Model:       in.model,
			Prompt:      in.prompt,
			System:      in.system,
			Temperature: in.temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("ollama node %s: %w", node.ID, err)
		}

		r.applyPatch(node, models.NodeData{"lastResponse": resp.Response})
		r.recordResult(node.ID, resp.Response)

		targets := r.fanOut(node, resp.Response)
		r.notifyNodeDone(NodeDone{Node: node, Response: resp.Response, OutputTargetIDs: targets})

		r.log.Info().
			Str("nodeId", node.ID).
			Int("responseLen", len(resp.Response)).
			Int("outputs", len(targets)).
			Msg("Ollama node completed")
	}

	return order, nil
}
