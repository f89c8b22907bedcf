package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vidask/vidask/internal/models"
	"github.com/vidask/vidask/internal/services/analyzer"
	"github.com/vidask/vidask/internal/utils"
)

type AnalyzeHandler struct {
	analyzer *analyzer.Analyzer
}

func NewAnalyzeHandler(a *analyzer.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: a}
}

// Analyze godoc
// @Summary Answer a question about a YouTube video
// @Description Accepts a YouTube URL plus an optional trailing question in one string, retrieves the video's captions and answers the question from the transcript.
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "Video URL and optional question"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No input provided"})
		return
	}

	result, err := h.analyzer.Analyze(ctx, req.Input)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalyzeHandler) errorResponse(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		utils.LogError(ctx, "Unexpected pipeline failure", err)
		appErr = utils.NewInternalError(err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		c.JSON(appErr.StatusCode, models.ErrorResponse{
			Error:   appErr.Message,
			Message: appErr.Detail,
		})
		return
	}

	c.JSON(appErr.StatusCode, models.ErrorResponse{Error: appErr.Message})
}
