package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/app/services"
	"github.com/pucknotes/server/internal/middleware"
)

// EngagementController serves the like endpoints of one item kind. Notes and comments
// each get their own instance.
type EngagementController struct {
	engagementService services.EngagementService
	kind              models.ItemKind
}

// NewEngagementController creates a new EngagementController for kind
func NewEngagementController(engagementService services.EngagementService, kind models.ItemKind) *EngagementController {
	return &EngagementController{
		engagementService: engagementService,
		kind:              kind,
	}
}

// Like godoc
// @Summary Like an item
// @Description Idempotent: liking twice counts once
// @Tags likes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note or comment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/like [put]
// @Router /comments/{id}/like [put]
func (c *EngagementController) Like(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.engagementService.Like(ctx.Request.Context(), middleware.CurrentAccount(ctx), c.kind, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Unlike godoc
// @Summary Remove a like
// @Description Idempotent: unliking an item that is not liked succeeds
// @Tags likes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note or comment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/like [delete]
// @Router /comments/{id}/like [delete]
func (c *EngagementController) Unlike(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.engagementService.Unlike(ctx.Request.Context(), middleware.CurrentAccount(ctx), c.kind, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// HasLiked godoc
// @Summary Whether the caller likes an item
// @Tags likes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note or comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeStatusResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/like [get]
// @Router /comments/{id}/like [get]
func (c *EngagementController) HasLiked(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	liked, err := c.engagementService.HasLiked(ctx.Request.Context(), middleware.CurrentAccount(ctx), c.kind, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LikeStatusResponse{Liked: liked}))
}

// TotalLikes godoc
// @Summary Number of likes on an item
// @Tags likes
// @Produce json
// @Param id path int true "Note or comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeCountResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/likes [get]
// @Router /comments/{id}/likes [get]
func (c *EngagementController) TotalLikes(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	total, err := c.engagementService.TotalLikes(ctx.Request.Context(), c.kind, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LikeCountResponse{TotalLikes: total}))
}
