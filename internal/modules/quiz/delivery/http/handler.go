package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zihui-app/zihui/internal/modules/quiz/dto"
	quiz "github.com/zihui-app/zihui/internal/modules/quiz/service"
	"github.com/zihui-app/zihui/pkg/apperror"
	"github.com/zihui-app/zihui/pkg/response"
	"github.com/zihui-app/zihui/pkg/validator"
)

type QuizHandler struct {
	service quiz.Service
}

func NewQuizHandler(service quiz.Service) *QuizHandler {
	return &QuizHandler{service: service}
}

func (h *QuizHandler) GradeAnswer(c *gin.Context) {
	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	result, err := h.service.Grade(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
