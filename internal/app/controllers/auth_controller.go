// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/app/services"
	"github.com/pucknotes/server/internal/middleware"
	"github.com/rs/zerolog"
)

// AuthController handles login, logout and the session probe
type AuthController struct {
	sessionService services.SessionService
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(sessionService services.SessionService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Login handles user login
// @Summary Log in
// @Description Checks the credentials and opens a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	c.logger.Debug().Msg("Login endpoint called")

	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	token, err := c.sessionService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}

// Logout handles user logout
// @Summary Log out
// @Description Revokes the session behind the bearer token. Always succeeds.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.sessionService.Logout(ctx.Request.Context(), middleware.BearerToken(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Session godoc
// @Summary Current session
// @Description Returns the logged in account, or a null id for anonymous callers
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Router /session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	var resp dto.SessionResponse
	if acct := middleware.CurrentAccount(ctx); acct != nil {
		resp.AccountID = &acct.ID
		resp.Username = acct.Username
		resp.Role = acct.Role.String()
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
