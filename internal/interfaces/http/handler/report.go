package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	orderapp "github.com/shopdesk/backend/internal/application/order"
	paymentapp "github.com/shopdesk/backend/internal/application/payment"
	reportapp "github.com/shopdesk/backend/internal/application/report"
)

// DashboardUseCase is the dashboard service as seen by the HTTP layer
type DashboardUseCase interface {
	Overview(ctx context.Context) (*reportapp.OverviewResponse, error)
	Analytics(ctx context.Context) (*reportapp.AnalyticsResponse, error)
	Inventory(ctx context.Context) (*reportapp.InventoryResponse, error)
}

// ExportUseCase renders downloadable listings
type ExportUseCase interface {
	ExportOrders(ctx context.Context, filter orderapp.OrderListFilter, req reportapp.ExportRequest) (*reportapp.ExportResult, error)
	ExportPayments(ctx context.Context, filter paymentapp.PaymentListFilter, req reportapp.ExportRequest) (*reportapp.ExportResult, error)
}

// ReportHandler serves the staff dashboard views and exports
type ReportHandler struct {
	BaseHandler
	dashboard DashboardUseCase
	exports   ExportUseCase
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboard DashboardUseCase, exports ExportUseCase) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		exports:   exports,
	}
}

// Overview godoc
// @ID           dashboardOverview
// @Summary      Dashboard overview
// @Description  Counts, delivered revenue, status breakdown, top products, low stock and latest orders
// @Tags         admin-dashboard
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.OverviewResponse]
// @Security     BearerAuth
// @Router       /admin/dashboard/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// Analytics godoc
// @ID           dashboardAnalytics
// @Summary      Sales analytics
// @Description  Daily revenue for the last 30 days, category performance and a month over month comparison
// @Tags         admin-dashboard
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.AnalyticsResponse]
// @Security     BearerAuth
// @Router       /admin/dashboard/analytics [get]
func (h *ReportHandler) Analytics(c *gin.Context) {
	analytics, err := h.dashboard.Analytics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analytics)
}

// Inventory godoc
// @ID           dashboardInventory
// @Summary      Inventory view
// @Tags         admin-dashboard
// @Produce      json
// @Success      200 {object} APIResponse[reportapp.InventoryResponse]
// @Security     BearerAuth
// @Router       /admin/dashboard/inventory [get]
func (h *ReportHandler) Inventory(c *gin.Context) {
	inventory, err := h.dashboard.Inventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inventory)
}

// ExportOrders godoc
// @ID           exportOrders
// @Summary      Export orders
// @Description  Streams the filtered orders as CSV or XLSX. With archive=true the file is stored and its link returned instead.
// @Tags         admin-reports
// @Produce      octet-stream
// @Produce      json
// @Param        format      query string false "File format" Enums(csv, xlsx) default(csv)
// @Param        archive     query bool   false "Store the file and return a download link"
// @Param        status      query string false "Filter by status"
// @Param        customer_id query string false "Filter by customer" format(uuid)
// @Param        from        query string false "Created on or after (YYYY-MM-DD)"
// @Param        to          query string false "Created on or before (YYYY-MM-DD)"
// @Success      200 {file}   file
// @Success      201 {object} APIResponse[reportapp.ExportResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reports/orders/export [get]
func (h *ReportHandler) ExportOrders(c *gin.Context) {
	var req reportapp.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter, ok := bindOrderFilter(&h.BaseHandler, c)
	if !ok {
		return
	}

	result, err := h.exports.ExportOrders(c.Request.Context(), filter, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendExport(c, result)
}

// ExportPayments godoc
// @ID           exportPayments
// @Summary      Export payments
// @Tags         admin-reports
// @Produce      octet-stream
// @Produce      json
// @Param        format         query string false "File format" Enums(csv, xlsx) default(csv)
// @Param        archive        query bool   false "Store the file and return a download link"
// @Param        status         query string false "Filter by status"
// @Param        payment_method query string false "Filter by method"
// @Param        order_id       query string false "Filter by order" format(uuid)
// @Success      200 {file}   file
// @Success      201 {object} APIResponse[reportapp.ExportResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/reports/payments/export [get]
func (h *ReportHandler) ExportPayments(c *gin.Context) {
	var req reportapp.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	var filter paymentapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	orderID, ok := h.ParseUUIDQuery(c, "order_id")
	if !ok {
		return
	}
	filter.OrderID = orderID

	result, err := h.exports.ExportPayments(c.Request.Context(), filter, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.sendExport(c, result)
}

// sendExport writes the file itself, or its archive location when it was
// stored
func (h *ReportHandler) sendExport(c *gin.Context, result *reportapp.ExportResult) {
	if result.ArchiveKey != "" {
		h.Created(c, result)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header("X-Export-Rows", fmt.Sprintf("%d", result.Rows))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
