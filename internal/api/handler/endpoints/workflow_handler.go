package endpoints

import (
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	pipelinellm "github.com/davy1ex/pipelineLLM"
	"github.com/davy1ex/pipelineLLM/internal/api/handler/request"
	"github.com/davy1ex/pipelineLLM/internal/api/handler/response"
	"github.com/davy1ex/pipelineLLM/internal/api/service"
	"github.com/davy1ex/pipelineLLM/pkg"
)

type workflowHandler struct {
	logger          zerolog.Logger
	config          pipelinellm.AppConfig
	workflowService *service.WorkflowService
}

func newWorkflowHandler(workflowService *service.WorkflowService) *workflowHandler {
	return &workflowHandler{
		logger:          pipelinellm.Logger,
		config:          pipelinellm.GetConfig(),
		workflowService: workflowService,
	}
}

// WorkflowHandler sets up the workflow execution route
func WorkflowHandler(router *graceful.Graceful, workflowService *service.WorkflowService) {
	h := newWorkflowHandler(workflowService)

	routes := router.Group("/api/workflow")
	{
		routes.POST("/execute", h.execute)
	}
}

func (slf *workflowHandler) execute(c *gin.Context) {
	var req request.ExecuteWorkflow
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse workflow execution request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	result, err := slf.workflowService.Execute(c.Request.Context(), req.Nodes, req.Edges, req.DefaultUrl, req.DefaultModel)
	if err != nil {
		// Graph-level failures (empty prompt, unreachable generation
		// service) surface to the canvas as a run error banner.
		slf.logger.Error().Err(err).Msg("Workflow execution failed")
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.ExecuteWorkflow{
		OllamaResponse: result.Response,
		OutputNodeId:   result.OutputNodeID,
		OutputUpdates:  result.OutputUpdates,
		NodeResults:    result.NodeResults,
		Nodes:          result.Nodes,
	})
}
