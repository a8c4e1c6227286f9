package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/internal/modules/character/dto"
	character "github.com/zihui-app/zihui/internal/modules/character/service"
	"github.com/zihui-app/zihui/pkg/response"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100

	defaultPageSize = 20
	maxPageSize     = 100
)

type CharacterHandler struct {
	service character.Service
}

func NewCharacterHandler(service character.Service) *CharacterHandler {
	return &CharacterHandler{service: service}
}

func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= entity.CatalogSizeBound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character index"})
		return
	}

	result, err := h.service.GetByIndex(c.Request.Context(), index)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CharacterHandler) GetCharacterRange(c *gin.Context) {
	start, err1 := strconv.Atoi(c.Param("start"))
	count, err2 := strconv.Atoi(c.Param("count"))
	if err1 != nil || err2 != nil ||
		start < 0 || start >= entity.CatalogSizeBound ||
		count < 1 || count > entity.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range parameters"})
		return
	}

	results, err := h.service.GetRange(c.Request.Context(), start, count)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *CharacterHandler) SearchCharacters(c *gin.Context) {
	term := c.Query("q")
	if strings.TrimSpace(term) == "" {
		c.JSON(http.StatusOK, []entity.Character{})
		return
	}

	limit := defaultSearchLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter (1-100)"})
			return
		}
		limit = parsed
	}

	results, err := h.service.Search(c.Request.Context(), term, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *CharacterHandler) GetFilteredCharacters(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	page := 0
	if pageParam := c.Query("page"); pageParam != "" {
		page, err = strconv.Atoi(pageParam)
		if err != nil || page < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
			return
		}
	}

	pageSize := defaultPageSize
	if sizeParam := c.Query("pageSize"); sizeParam != "" {
		pageSize, err = strconv.Atoi(sizeParam)
		if err != nil || pageSize < 1 || pageSize > maxPageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
			return
		}
	}

	opts := dto.FilterOptions{
		FilterReading: c.Query("filterReading") == "true",
		FilterWriting: c.Query("filterWriting") == "true",
		FilterRadical: c.Query("filterRadical") == "true",
	}

	// Malformed or out-of-band level values are dropped, matching the
	// lenient CSV handling of the batch indices parameter.
	if levelsParam := c.Query("hskLevels"); levelsParam != "" {
		for _, part := range strings.Split(levelsParam, ",") {
			level, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || level < 1 || level > 6 {
				continue
			}
			opts.HSKLevels = append(opts.HSKLevels, level)
		}
	}

	result, err := h.service.GetFiltered(c.Request.Context(), userID, page, pageSize, opts)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
