package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apierrors "github.com/stwalsh4118/room4rent/internal/errors"
	"github.com/stwalsh4118/room4rent/internal/models"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// BillHandler handles bill and payment HTTP requests.
type BillHandler struct {
	bills    services.BillService
	payments services.PaymentService
}

// NewBillHandler creates a new BillHandler instance.
func NewBillHandler(bills services.BillService, payments services.PaymentService) *BillHandler {
	return &BillHandler{bills: bills, payments: payments}
}

// GenerateBillRequest is the body of POST /bills/generate.
type GenerateBillRequest struct {
	DueDate            models.Date  `json:"due_date"`
	BillingPeriodStart *models.Date `json:"billing_period_start"`
	BillingPeriodEnd   *models.Date `json:"billing_period_end"`
	TenantID           int64        `json:"tenant_id" binding:"required"`
	Month              int          `json:"month" binding:"required"`
	Year               int          `json:"year" binding:"required"`
}

// GenerateBillResponse reports whether the bill was created or overwritten.
type GenerateBillResponse struct {
	Bill    *models.Bill `json:"bill"`
	Created bool         `json:"created"`
}

// UpdateStatusRequest is the body of PUT /bills/:id/status.
type UpdateStatusRequest struct {
	Status models.BillStatus `json:"status" binding:"required,oneof=paid unpaid overdue"`
}

// RecordPaymentRequest is the body of POST /bills/payments. payment_date
// accepts RFC 3339 or YYYY-MM-DD and defaults to now.
type RecordPaymentRequest struct {
	PaymentDate   *string         `json:"payment_date"`
	PaymentMethod string          `json:"payment_method" binding:"required,max=50"`
	AmountPaid    decimal.Decimal `json:"amount_paid" binding:"required,gt=0"`
	BillID        int64           `json:"bill_id" binding:"required,gt=0"`
}

// List handles GET /bills.
func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.bills.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

// Get handles GET /bills/:id.
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.bills.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to query bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// ListByTenant handles GET /bills/tenant/:tenantId.
func (h *BillHandler) ListByTenant(c *gin.Context) {
	tenantID, ok := idParam(c, "tenantId")
	if !ok {
		return
	}

	bills, err := h.bills.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		writeServiceError(c, err, "Failed to list tenant bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

// Current handles GET /bills/tenant/:tenantId/current.
func (h *BillHandler) Current(c *gin.Context) {
	tenantID, ok := idParam(c, "tenantId")
	if !ok {
		return
	}

	bill, err := h.bills.Current(c.Request.Context(), tenantID)
	if err != nil {
		writeServiceError(c, err, "Failed to query current bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// Generate handles POST /bills/generate.
func (h *BillHandler) Generate(c *gin.Context) {
	var req GenerateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, created, err := h.bills.Generate(c.Request.Context(), services.GenerateBillInput{
		DueDate:            req.DueDate,
		BillingPeriodStart: req.BillingPeriodStart,
		BillingPeriodEnd:   req.BillingPeriodEnd,
		TenantID:           req.TenantID,
		Month:              req.Month,
		Year:               req.Year,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to generate bill")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, GenerateBillResponse{Bill: bill, Created: created})
}

// UpdateStatus handles PUT /bills/:id/status.
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.bills.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeServiceError(c, err, "Failed to update bill status")
		return
	}
	c.JSON(http.StatusOK, bill)
}

// RecordPayment handles POST /bills/payments.
func (h *BillHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	var paidAt *time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		t, err := models.ParseTimestamp(*req.PaymentDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		paidAt = &t
	}

	result, err := h.payments.Record(c.Request.Context(), services.RecordPaymentInput{
		PaymentDate:   paidAt,
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.AmountPaid,
		BillID:        req.BillID,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Payments handles GET /bills/:id/payments.
func (h *BillHandler) Payments(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.payments.History(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Failed to query payment history")
		return
	}
	c.JSON(http.StatusOK, payments)
}
