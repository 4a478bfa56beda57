package endpoints

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	pipelinellm "github.com/davy1ex/pipelineLLM"
	"github.com/davy1ex/pipelineLLM/internal/api/handler/request"
	"github.com/davy1ex/pipelineLLM/internal/api/handler/response"
	"github.com/davy1ex/pipelineLLM/pkg"
)

type ollamaHandler struct {
	logger zerolog.Logger
	config pipelinellm.AppConfig
	client *pkg.OllamaClient
}

func newOllamaHandler() *ollamaHandler {
	cfg := pipelinellm.GetConfig()
	return &ollamaHandler{
		logger: pipelinellm.Logger,
		config: cfg,
		client: pkg.NewOllamaClient(cfg.OllamaConfig.DockerRewrite),
	}
}

// OllamaHandler sets up the Ollama proxy route used by the canvas
func OllamaHandler(router *graceful.Graceful) {
	h := newOllamaHandler()

	routes := router.Group("/api/ollama")
	{
		routes.POST("/chat", h.chat)
	}
}

func (slf *ollamaHandler) chat(c *gin.Context) {
	var req request.OllamaChat
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse ollama chat request")
		c.JSON(http.StatusBadRequest, response.ServiceError{Error: "Prompt is required"})
		return
	}

	if req.Url == "" {
		req.Url = slf.config.OllamaConfig.DefaultURL
	}
	if req.Model == "" {
		req.Model = slf.config.OllamaConfig.DefaultModel
	}
	temperature := 0.7
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	slf.logger.Info().
		Str("model", req.Model).
		Int("promptLen", len(req.Prompt)).
		Bool("hasSystemPrompt", req.System != "").
		Msg("Proxying ollama chat")

	result, err := slf.client.Generate(c.Request.Context(), pkg.OllamaGenerateRequest{
		URL:         req.Url,
		Model:       req.Model,
		Prompt:      req.Prompt,
		System:      req.System,
		Temperature: temperature,
	})
	if err != nil {
		slf.logger.Error().Err(err).Msg("Ollama call failed")
		c.JSON(statusForOllamaError(err), response.ServiceError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.OllamaChat{
		Response: result.Response,
		Model:    result.Model,
		Done:     result.Done,
	})
}

// statusForOllamaError mirrors the upstream failure modes: timeouts map to
// 504, unreachable hosts to 503, everything else to 500.
func statusForOllamaError(err error) int {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
