package handler

import (
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/report"
	"github.com/fekuna/omnipos-restaurant-service/internal/report/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReportHandler) GenerateSales(c *gin.Context) {
	var input dto.GenerateSalesReportInput
	if !resp.BindJSON(c, &input) {
		return
	}
	date, err := dto.ParseDate(input.ReportDate)
	if err != nil {
		resp.Error(c, err)
		return
	}

	rpt, err := h.uc.GenerateSalesReport(c.Request.Context(), date)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to generate sales report", zap.String("report_date", input.ReportDate), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, rpt)
}

func (h *ReportHandler) ListSales(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	reports, count, err := h.uc.ListSalesReports(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, reports)
}

func (h *ReportHandler) GetSales(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	rpt, err := h.uc.GetSalesReport(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rpt)
}

func (h *ReportHandler) GeneratePerformance(c *gin.Context) {
	var input dto.GeneratePerformanceReportInput
	if !resp.BindJSON(c, &input) {
		return
	}
	date, err := dto.ParseDate(input.ReportDate)
	if err != nil {
		resp.Error(c, err)
		return
	}

	rpt, err := h.uc.GeneratePerformanceReport(c.Request.Context(), input.UserID, date)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to generate performance report",
				zap.Int64("user_id", input.UserID),
				zap.String("report_date", input.ReportDate),
				zap.Error(err),
			)
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, rpt)
}

// ListPerformance accepts ?from, ?to and ?userId on top of pagination.
func (h *ReportHandler) ListPerformance(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		return
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid userId")
			return
		}
		filters.UserID = &id
	}

	reports, count, err := h.uc.ListPerformanceReports(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, reports)
}

func (h *ReportHandler) GetPerformance(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	rpt, err := h.uc.GetPerformanceReport(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rpt)
}

func parseFilters(c *gin.Context) (*dto.ReportFilters, bool) {
	filters := &dto.ReportFilters{}
	if raw := c.Query("from"); raw != "" {
		from, err := dto.ParseDate(raw)
		if err != nil {
			resp.Error(c, err)
			return nil, false
		}
		filters.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := dto.ParseDate(raw)
		if err != nil {
			resp.Error(c, err)
			return nil, false
		}
		filters.To = &to
	}
	filters.Page, filters.PageSize = resp.Pagination(c)
	return filters, true
}
