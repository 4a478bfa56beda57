package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"

	pipelinellm "github.com/davy1ex/pipelineLLM"
	"github.com/davy1ex/pipelineLLM/internal/api/handler/endpoints"
	"github.com/davy1ex/pipelineLLM/internal/api/service"
	"github.com/davy1ex/pipelineLLM/internal/api/websocket"
)

func main() {
	pipelinellm.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)
	if pipelinellm.GetConfig().Mode == "dev" {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(pipelinellm.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hub := websocket.NewHub(pipelinellm.Logger)
	go hub.Run()
	pipelinellm.Logger.Info().Msg("WebSocket hub started")

	workflowService := service.NewWorkflowService(hub)
	fileService := service.NewFileService()

	initAPI(router, hub, workflowService, fileService)

	pipelinellm.Logger.Debug().Msgf("Starting workflow API on port %s", pipelinellm.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		pipelinellm.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, hub *websocket.Hub, workflowService *service.WorkflowService, fileService *service.FileService) {
	endpoints.HealthHandler(router)
	endpoints.WorkflowHandler(router, workflowService)
	endpoints.OllamaHandler(router)
	endpoints.PythonHandler(router)
	endpoints.FileHandler(router, fileService)
	endpoints.WebSocketHandler(router, hub)
}
