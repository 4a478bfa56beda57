package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/davy1ex/pipelineLLM/internal/api/models"
)

const (
	fallbackURL        = "http://localhost:11434"
	fallbackModel      = "llama3.2"
	defaultTemperature = 0.7
)

// NodeDone is the incremental completion event emitted once per executed node,
// so the host can update the canvas without waiting for the whole run.
type NodeDone struct {
	Node            *models.Node
	Response        string
	OutputTargetIDs []string
}

// Options carries caller-supplied defaults and hooks for one run.
type Options struct {
	DefaultURL   string
	DefaultModel string

	// OnNodeStart/OnNodeDone are optional host hooks. A panicking hook is
	// recovered and logged; it never aborts the run.
	OnNodeStart func(node *models.Node)
	OnNodeDone  func(done NodeDone)

	Logger zerolog.Logger
}

// Result is the engine boundary output consumed by the host UI.
type Result struct {
	Response      string                     `json:"ollamaResponse"`
	OutputNodeID  string                     `json:"outputNodeId,omitempty"`
	OutputUpdates map[string]string          `json:"outputUpdates"`
	NodeResults   map[string]string          `json:"nodeResults"`
	Patches       map[string]models.NodeData `json:"patches"`
	Nodes         []models.Node              `json:"nodes"`
}

// Runner executes one workflow snapshot to fixpoint. It is single-use and
// single-goroutine: phases run strictly in order and every external call is
// awaited before the next node is visited.
type Runner struct {
	graph     *Graph
	generator TextGenerator
	runner    CodeRunner
	opts      Options
	log       zerolog.Logger

	// First successful computation per node wins here; re-computations on
	// later passes may repatch node data but never replace a cache entry.
	cache map[string]string

	// Pending sink display updates, last write wins.
	outputUpdates map[string]string
	firstOutputID string

	patches map[string]models.NodeData

	lastOllamaOrder []*models.Node
	lastPythonOrder []*models.Node
}

func NewRunner(nodes []models.Node, edges []models.Edge, generator TextGenerator, runner CodeRunner, opts Options) *Runner {
	return &Runner{
		graph:         NewGraph(nodes, edges),
		generator:     generator,
		runner:        runner,
		opts:          opts,
		log:           opts.Logger,
		cache:         make(map[string]string),
		outputUpdates: make(map[string]string),
		patches:       make(map[string]models.NodeData),
	}
}

// Execute runs python and ollama phases in a fixed order, pass after pass,
// until a pass contributes no new node result. Progress is measured by cache
// growth, not a pass cap, so arbitrarily long cross-type chains converge;
// true cycles simply stop early with partial results.
func (r *Runner) Execute(ctx context.Context) (*Result, error) {
	ollamaCount := len(r.graph.NodesOfType(models.NodeTypeOllama))
	pythonCount := len(r.graph.NodesOfType(models.NodeTypePython))
	if ollamaCount == 0 && pythonCount == 0 {
		r.log.Info().Msg("No executable nodes in workflow, nothing to run")
		return r.buildResult(), nil
	}

	for pass := 1; ; pass++ {
		before := len(r.cache)

		pythonOrder := r.runPythonPhase(ctx)
		ollamaOrder, err := r.runOllamaPhase(ctx)
		if err != nil {
			return nil, err
		}

		if len(pythonOrder) > 0 {
			r.lastPythonOrder = pythonOrder
		}
		if len(ollamaOrder) > 0 {
			r.lastOllamaOrder = ollamaOrder
		}

		added := len(r.cache) - before
		r.log.Debug().
			Int("pass", pass).
			Int("newResults", added).
			Int("totalResults", len(r.cache)).
			Msg("Workflow pass finished")
		if added == 0 {
			r.logStarvedNodes(pass)
			break
		}
	}

	return r.buildResult(), nil
}

// logStarvedNodes names the executable nodes that still have no result at
// convergence: members of a dependency cycle, or python nodes whose runs
// failed on every pass.
func (r *Runner) logStarvedNodes(pass int) {
	var starved []string
	for i := range r.graph.Nodes {
		n := &r.graph.Nodes[i]
		if !n.Type.IsExecutable() {
			continue
		}
		if _, ok := r.cache[n.ID]; !ok {
			starved = append(starved, n.ID)
		}
	}
	if len(starved) > 0 {
		r.log.Warn().
			Int("passes", pass).
			Strs("nodeIds", starved).
			Msg("Workflow converged without results for some nodes")
		return
	}
	r.log.Info().
		Int("passes", pass).
		Int("results", len(r.cache)).
		Msg("Workflow converged")
}

func (r *Runner) buildResult() *Result {
	response := ""
	if order := r.lastOllamaOrder; len(order) > 0 {
		response = r.cache[order[len(order)-1].ID]
	} else if order := r.lastPythonOrder; len(order) > 0 {
		response = r.cache[order[len(order)-1].ID]
	}
	return &Result{
		Response:      response,
		OutputNodeID:  r.firstOutputID,
		OutputUpdates: r.outputUpdates,
		NodeResults:   r.cache,
		Patches:       r.patches,
		Nodes:         r.graph.Nodes,
	}
}

// recordResult publishes a node result into the shared cache unless an earlier
// pass already computed one.
func (r *Runner) recordResult(nodeID, text string) {
	if _, ok := r.cache[nodeID]; !ok {
		r.cache[nodeID] = text
	}
}

// applyPatch merges a computed patch into the engine's snapshot of the node,
// so later phases and passes observe it, and accumulates it for the caller.
func (r *Runner) applyPatch(node *models.Node, patch models.NodeData) {
	node.Data.Apply(patch)
	acc, ok := r.patches[node.ID]
	if !ok {
		acc = models.NodeData{}
		r.patches[node.ID] = acc
	}
	acc.Apply(patch)
}

// fanOut records the pending display update for every sink directly connected
// to node and returns their ids.
func (r *Runner) fanOut(node *models.Node, text string) []string {
	targets := r.graph.OutgoingSinkTargets(node.ID)
	for _, target := range targets {
		if r.firstOutputID == "" {
			r.firstOutputID = target
		}
		r.outputUpdates[target] = text
	}
	return targets
}

func (r *Runner) notifyNodeStart(node *models.Node) {
	if r.opts.OnNodeStart == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn().Interface("panic", p).Str("nodeId", node.ID).Msg("OnNodeStart hook panicked")
		}
	}()
	r.opts.OnNodeStart(node)
}

func (r *Runner) notifyNodeDone(done NodeDone) {
	if r.opts.OnNodeDone == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn().Interface("panic", p).Str("nodeId", done.Node.ID).Msg("OnNodeDone hook panicked")
		}
	}()
	r.opts.OnNodeDone(done)
}
