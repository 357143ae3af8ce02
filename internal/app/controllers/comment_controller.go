package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/app/services"
	"github.com/pucknotes/server/internal/middleware"
)

// CommentController handles comment operations
type CommentController struct {
	commentService services.CommentService
	listingService services.ListingService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService, listingService services.ListingService) *CommentController {
	return &CommentController{
		commentService: commentService,
		listingService: listingService,
	}
}

// CreateComment godoc
// @Summary Comment on a note
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=models.Comment}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	if err := services.RequirePoster(middleware.CurrentAccount(ctx), "comments"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	comment, err := c.commentService.CreateComment(ctx.Request.Context(), middleware.CurrentAccount(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// ListComments godoc
// @Summary List comments
// @Tags comments
// @Produce json
// @Param noteID query int false "Note ID"
// @Param ownerID query int false "Author account ID"
// @Param query query string false "Substring of the body"
// @Param sort query string false "likes or date" default(likes)
// @Param order query string false "asc or desc" default(asc)
// @Param return query string false "id, count or object" default(id)
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	var req dto.CommentListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	result, err := c.listingService.ListComments(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result.Payload()))
}

// GetComment godoc
// @Summary Get a comment by ID
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=models.Comment}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /comments/{id} [get]
func (c *CommentController) GetComment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	comment, err := c.commentService.GetComment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comment))
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Only the author may edit
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "New body"
// @Success 200 {object} dto.APIResponse{data=models.Comment}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /comments/{id} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	comment, err := c.commentService.UpdateComment(ctx.Request.Context(), middleware.CurrentAccount(ctx), id, req.Body)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Authors and moderators may delete
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.commentService.DeleteComment(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
