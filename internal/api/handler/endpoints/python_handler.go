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

type pythonHandler struct {
	logger        zerolog.Logger
	pythonService *service.PythonService
}

func newPythonHandler() *pythonHandler {
	return &pythonHandler{
		logger:        pipelinellm.Logger,
		pythonService: service.NewPythonService(),
	}
}

// PythonHandler sets up the code execution route used by the canvas
func PythonHandler(router *graceful.Graceful) {
	h := newPythonHandler()

	routes := router.Group("/api/python")
	{
		routes.POST("/execute", h.execute)
	}
}

func (slf *pythonHandler) execute(c *gin.Context) {
	var req request.ExecutePython
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse python execution request")
		c.JSON(http.StatusBadRequest, response.ServiceError{Error: "Code is required"})
		return
	}

	result, err := slf.pythonService.Run(c.Request.Context(), req.Code)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to prepare python workspace")
		c.JSON(http.StatusInternalServerError, response.ServiceError{Error: err.Error()})
		return
	}

	// Execution failures stay in the 200 body; the caller reads the
	// error field (or stderr) as the node-local failure text.
	c.JSON(http.StatusOK, response.ExecutePython{
		Output: result.Output,
		Stdout: result.Stdout,
		Stderr: result.Stderr,
		Error:  result.Error,
	})
}
