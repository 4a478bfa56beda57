package endpoints

import (
	"errors"
	"fmt"
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

type fileHandler struct {
	logger      zerolog.Logger
	fileService *service.FileService
}

func newFileHandler(fileService *service.FileService) *fileHandler {
	return &fileHandler{
		logger:      pipelinellm.Logger,
		fileService: fileService,
	}
}

// FileHandler sets up the file-writer node routes
func FileHandler(router *graceful.Graceful, fileService *service.FileService) {
	h := newFileHandler(fileService)

	routes := router.Group("/api/files")
	{
		routes.POST("/create", h.create)
		routes.GET("/download/:fileId", h.download)
	}
}

func (slf *fileHandler) create(c *gin.Context) {
	var req request.CreateFile
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse file creation request")
		c.JSON(http.StatusBadRequest, response.ServiceError{Error: "Content is required"})
		return
	}

	file := slf.fileService.Create(req.Filename, []byte(req.Content))
	c.JSON(http.StatusOK, response.CreateFile{
		FileId:   file.ID,
		Filename: file.Filename,
		Size:     len(file.Content),
	})
}

func (slf *fileHandler) download(c *gin.Context) {
	file, err := slf.fileService.Get(c.Param("fileId"))
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, response.ServiceError{Error: "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ServiceError{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", file.Content)
}
