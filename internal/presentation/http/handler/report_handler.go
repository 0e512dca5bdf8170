package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bytechef-api/internal/application/service"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bytechef-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the daily and monthly report endpoints
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily handles GET /reports/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	rep, err := h.reportService.DailySummary(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Erro ao gerar relatório diário")
		return
	}

	response.OK(c, rep)
}

// Monthly handles GET /reports/monthly?month=YYYY-MM
func (h *ReportHandler) Monthly(c *gin.Context) {
	var filter request.MonthFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Parâmetros inválidos")
		return
	}

	rep, err := h.reportService.MonthlySummary(c.Request.Context(), filter.Month)
	if err != nil {
		response.Error(c, err, "Erro ao gerar relatório mensal")
		return
	}

	response.OK(c, rep)
}

// ExportMonthly handles GET /reports/monthly/export?month=YYYY-MM
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	var filter request.MonthFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Parâmetros inválidos")
		return
	}

	data, filename, err := h.reportService.ExportMonthly(c.Request.Context(), filter.Month)
	if err != nil {
		response.Error(c, err, "Erro ao exportar relatório mensal")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
