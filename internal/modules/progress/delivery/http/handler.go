package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/internal/modules/progress/dto"
	progress "github.com/zihui-app/zihui/internal/modules/progress/service"
	"github.com/zihui-app/zihui/pkg/apperror"
	"github.com/zihui-app/zihui/pkg/response"
	"github.com/zihui-app/zihui/pkg/validator"
)

type ProgressHandler struct {
	service progress.Service
}

func NewProgressHandler(service progress.Service) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	index, err := strconv.Atoi(c.Param("characterIndex"))
	if err != nil || index < 0 || index >= entity.CatalogSizeBound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character index"})
		return
	}

	record, err := h.service.Get(c.Request.Context(), userID, index)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ProgressHandler) GetProgressRange(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	start, err1 := strconv.Atoi(c.Param("start"))
	count, err2 := strconv.Atoi(c.Param("count"))
	if err1 != nil || err2 != nil ||
		start < 0 || start >= entity.CatalogSizeBound ||
		count < 1 || count > entity.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range parameters"})
		return
	}

	records, err := h.service.GetRange(c.Request.Context(), userID, start, count)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ProgressHandler) GetProgressBatch(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	indicesParam := c.Query("indices")
	if indicesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing indices parameter"})
		return
	}

	// Out-of-range entries are dropped rather than rejected; only the
	// overall batch size is a hard limit.
	var indices []int
	for _, part := range strings.Split(indicesParam, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n >= entity.CatalogSizeBound {
			continue
		}
		indices = append(indices, n)
	}

	if len(indices) == 0 {
		c.JSON(http.StatusOK, []dto.ProgressResponse{})
		return
	}

	if len(indices) > entity.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many indices (max %d)", entity.MaxBatchSize)})
		return
	}

	records, err := h.service.GetBatch(c.Request.Context(), userID, indices)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ProgressHandler) UpsertProgress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpsertProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	record, err := h.service.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
