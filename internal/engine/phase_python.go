package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

// pythonInputPreamble injects the resolved upstream value into the user's code
// under both conventional names, so user code never hits a NameError when
// nothing is connected.
func pythonInputPreamble(input string) string {
	escaped := strings.ReplaceAll(input, `"""`, `\"""`)
	return fmt.Sprintf("data_input = \"\"\"%s\"\"\"\ninput_data = data_input\n", escaped)
}

// runPythonPhase executes every python node in dependency order. Nodes are
// re-executed each pass so they can consume upstream results computed since;
// the cache only grows on first success, so re-execution never counts as
// progress. All failures are node-local: they land in the node's lastError
// field and the run continues.
func (r *Runner) runPythonPhase(ctx context.Context) []*models.Node {
	order := r.graph.PythonOrder()

	for _, node := range order {
		code := node.Data.String("code")
		if strings.TrimSpace(code) == "" {
			r.log.Warn().Str("nodeId", node.ID).Msg("Python node has no code, skipping")
			continue
		}

		input, _ := r.graph.InputText(node.ID, "input", r.cache)
		if input == "" {
			// The default handle also feeds python nodes.
			input, _ = r.graph.InputText(node.ID, "", r.cache)
		}
		composed := pythonInputPreamble(input) + code

		r.notifyNodeStart(node)
		r.log.Info().Str("nodeId", node.ID).Int("codeLen", len(code)).Msg("Executing python node")

		res, err := r.runner.Run(ctx, composed)
		if err != nil {
			r.log.Error().Err(err).Str("nodeId", node.ID).Msg("Python runner call failed")
			r.applyPatch(node, models.NodeData{"lastError": err.Error()})
			continue
		}
		if failure := res.EffectiveError(); failure != "" {
			r.log.Warn().Str("nodeId", node.ID).Str("error", failure).Msg("Python node failed")
			r.applyPatch(node, models.NodeData{"lastError": failure})
			continue
		}

		output := res.EffectiveOutput()
		r.applyPatch(node, models.NodeData{"output": output, "lastError": ""})
		r.recordResult(node.ID, output)

		targets := r.fanOut(node, output)
		r.notifyNodeDone(NodeDone{Node: node, Response: output, OutputTargetIDs: targets})
	}

	return order
}
