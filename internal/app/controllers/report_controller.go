package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models/dto"
	"github.com/pucknotes/server/internal/app/services"
	"github.com/pucknotes/server/internal/middleware"
)

// ReportController handles abuse reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// CreateReport godoc
// @Summary Report a note or comment
// @Tags reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateReportRequest true "Report"
// @Success 201 {object} dto.APIResponse{data=models.Report}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	var req dto.CreateReportRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	report, err := c.reportService.CreateReport(ctx.Request.Context(), middleware.CurrentAccount(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report))
}

// ListReports godoc
// @Summary List all reports
// @Description Moderators only, newest first
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Report}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	reports, err := c.reportService.ListReports(ctx.Request.Context(), middleware.CurrentAccount(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// DeleteReport godoc
// @Summary Dismiss a report
// @Description Moderators only
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.reportService.DeleteReport(ctx.Request.Context(), middleware.CurrentAccount(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
