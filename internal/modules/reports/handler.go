package reports

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inspectdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/order-flow", h.OrderFlow)
		reports.GET("/order-flow/export", h.ExportOrderFlow)
		reports.GET("/sla", h.SLA)
		reports.GET("/sla/export", h.ExportSLA)
		reports.GET("/ranking", h.Ranking)
		reports.GET("/ranking/export", h.ExportRanking)
		reports.GET("/damage-billing", h.DamageBilling)
		reports.GET("/damage-billing/export", h.ExportDamageBilling)
		reports.GET("/service-mix", h.ServiceMix)
		reports.GET("/service-mix/export", h.ExportServiceMix)
	}
}

func (h *Handler) weeksParam(c *gin.Context) (int, bool) {
	weeks, err := strconv.Atoi(c.DefaultQuery("weeks", "4"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_PERIOD", "weeks must be 4, 8 or 12")
		return 0, false
	}
	return weeks, true
}

func (h *Handler) monthParams(c *gin.Context) (int, int, bool) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_MONTH", "year must be a number")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_MONTH", "month must be a number")
		return 0, 0, false
	}
	return year, month, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPeriod):
		response.Error(c, http.StatusBadRequest, "INVALID_PERIOD", "weeks must be 4, 8 or 12")
	case errors.Is(err, ErrInvalidMonth):
		response.Error(c, http.StatusBadRequest, "INVALID_MONTH", "month must be between 1 and 12")
	default:
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Could not load report data")
	}
}

func (h *Handler) sendWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) OrderFlow(c *gin.Context) {
	weeks, ok := h.weeksParam(c)
	if !ok {
		return
	}
	report, err := h.service.OrderFlow(c.Request.Context(), weeks)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ExportOrderFlow(c *gin.Context) {
	weeks, ok := h.weeksParam(c)
	if !ok {
		return
	}
	report, err := h.service.OrderFlow(c.Request.Context(), weeks)
	if err != nil {
		h.fail(c, err)
		return
	}
	f, err := BuildOrderFlowWorkbook(report)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Could not build workbook")
		return
	}
	h.sendWorkbook(c, f, ExportFilename("order_analysis", weeks, "weeks"))
}

func (h *Handler) SLA(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.SLA(c.Request.Context(), year, month, c.DefaultQuery("client", "all"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ExportSLA(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.SLA(c.Request.Context(), year, month, c.DefaultQuery("client", "all"))
	if err != nil {
		h.fail(c, err)
		return
	}
	f, err := BuildSLAWorkbook(report)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Could not build workbook")
		return
	}
	h.sendWorkbook(c, f, ExportFilename("analyst_sla", year, month))
}

func (h *Handler) Ranking(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.Ranking(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ExportRanking(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.Ranking(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	f, err := BuildRankingWorkbook(report)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Could not build workbook")
		return
	}
	h.sendWorkbook(c, f, ExportFilename("analyst_ranking", year, month))
}

func (h *Handler) DamageBilling(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.DamageBilling(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ExportDamageBilling(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.DamageBilling(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	f, err := BuildBillingWorkbook(report)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Could not build workbook")
		return
	}
	h.sendWorkbook(c, f, ExportFilename("damage_billing", year, month))
}

func (h *Handler) ServiceMix(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.ServiceMix(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) ExportServiceMix(c *gin.Context) {
	year, month, ok := h.monthParams(c)
	if !ok {
		return
	}
	report, err := h.service.ServiceMix(c.Request.Context(), year, month)
	if err != nil {
		h.fail(c, err)
		return
	}
	f, err := BuildMixWorkbook(report)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Could not build workbook")
		return
	}
	h.sendWorkbook(c, f, ExportFilename("service_mix", year, month))
}
