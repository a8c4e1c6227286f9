package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zihui-app/zihui/internal/entity"
	userRepo "github.com/zihui-app/zihui/internal/modules/user/repository"
	"github.com/zihui-app/zihui/pkg/apperror"
	"github.com/zihui-app/zihui/pkg/response"
	"github.com/zihui-app/zihui/pkg/validator"
	"gorm.io/gorm"
)

type UserHandler struct {
	repo userRepo.UserRepository
}

func NewUserHandler(repo userRepo.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

type syncUserRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	FirstName       *string `json:"first_name" binding:"omitempty,max=100"`
	LastName        *string `json:"last_name" binding:"omitempty,max=100"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,url"`
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	user, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ResponseError(c, apperror.ErrNotFound)
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SyncCurrentUser upserts the identity claims supplied by the auth
// provider after login.
func (h *UserHandler) SyncCurrentUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req syncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	user := &entity.User{
		ID:              userID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	}

	if err := h.repo.Upsert(c.Request.Context(), user); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
