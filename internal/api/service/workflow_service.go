package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pipelinellm "github.com/davy1ex/pipelineLLM"
	"github.com/davy1ex/pipelineLLM/internal/api/models"
	"github.com/davy1ex/pipelineLLM/internal/api/websocket"
	"github.com/davy1ex/pipelineLLM/internal/engine"
	"github.com/davy1ex/pipelineLLM/pkg"
)

// ollamaGenerator adapts the HTTP Ollama client to the engine's
// text-generation contract.
type ollamaGenerator struct {
	client *pkg.OllamaClient
}

func (slf ollamaGenerator) Generate(ctx context.Context, req engine.GenerateRequest) (engine.GenerateResponse, error) {
	resp, err := slf.client.Generate(ctx, pkg.OllamaGenerateRequest{
		URL:         req.URL,
		Model:       req.Model,
		Prompt:      req.Prompt,
		System:      req.System,
		Temperature: req.Temperature,
	})
	if err != nil {
		return engine.GenerateResponse{}, err
	}
	return engine.GenerateResponse{
		Response: resp.Response,
		Model:    resp.Model,
		Done:     resp.Done,
	}, nil
}

// WorkflowService owns one engine invocation per "Run" click: it wires the
// external collaborators, streams progress to the websocket hub and returns
// the engine's batch result.
type WorkflowService struct {
	logger    zerolog.Logger
	config    pipelinellm.AppConfig
	generator engine.TextGenerator
	runner    engine.CodeRunner
	hub       *websocket.Hub
}

func NewWorkflowService(hub *websocket.Hub) *WorkflowService {
	cfg := pipelinellm.GetConfig()
	return &WorkflowService{
		logger:    pipelinellm.Logger,
		config:    cfg,
		generator: ollamaGenerator{client: pkg.NewOllamaClient(cfg.OllamaConfig.DockerRewrite)},
		runner:    NewPythonService(),
		hub:       hub,
	}
}

// Execute runs the graph snapshot to fixpoint. The returned result carries the
// patched nodes back to the caller; the submitted slices are never mutated.
func (slf *WorkflowService) Execute(ctx context.Context, nodes []models.Node, edges []models.Edge, defaultURL, defaultModel string) (*engine.Result, error) {
	runID := uuid.NewString()
	log := slf.logger.With().Str("runId", runID).Logger()

	if defaultURL == "" {
		defaultURL = slf.config.OllamaConfig.DefaultURL
	}
	if defaultModel == "" {
		defaultModel = slf.config.OllamaConfig.DefaultModel
	}

	runner := engine.NewRunner(nodes, edges, slf.generator, slf.runner, engine.Options{
		DefaultURL:   defaultURL,
		DefaultModel: defaultModel,
		Logger:       log,
		OnNodeStart: func(node *models.Node) {
			slf.publish(websocket.NewNodeStarted(runID, node.ID))
		},
		OnNodeDone: func(done engine.NodeDone) {
			slf.publish(websocket.NewNodeCompleted(runID, done.Node.ID, done.Response, done.OutputTargetIDs))
			slf.publish(websocket.NewLog(runID, fmt.Sprintf("node %s completed (%d chars, %d outputs)",
				done.Node.ID, len(done.Response), len(done.OutputTargetIDs))))
		},
	})

	log.Info().Int("nodes", len(nodes)).Int("edges", len(edges)).Msg("Starting workflow run")
	slf.publish(websocket.NewRunStarted(runID))

	result, err := runner.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Workflow run failed")
		slf.publish(websocket.NewRunFailed(runID, err))
		return nil, err
	}

	log.Info().
		Int("results", len(result.NodeResults)).
		Int("outputUpdates", len(result.OutputUpdates)).
		Msg("Workflow run finished")
	slf.publish(websocket.NewRunFinished(runID))
	return result, nil
}

func (slf *WorkflowService) publish(message websocket.Message) {
	if slf.hub == nil {
		return
	}
	slf.hub.Publish(message)
}
