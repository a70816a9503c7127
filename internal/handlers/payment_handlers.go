package handlers

import (
	"net/http"

	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req services.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateCheckoutSession")
		return
	}

	resp, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateCheckoutSession: Error from paymentService.CreateCheckoutSession", "Failed to create checkout session.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PaymentSuccess is the redirect callback. Replays of the same session are
// answered with the payment recorded the first time.
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	payment, created, err := h.paymentService.ConfirmPayment(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err, "PaymentSuccess: Error from paymentService.ConfirmPayment for session "+sessionID, "Failed to record payment.")
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Payment already recorded",
			"transactionId": payment.TransactionID,
			"trackingId":    payment.TrackingID,
			"payment":       payment,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Payment recorded",
		"transactionId": payment.TransactionID,
		"trackingId":    payment.TrackingID,
		"payment":       payment,
	})
}

// ListPaymentsByCustomer returns the payment history for :email.
func (h *PaymentHandler) ListPaymentsByCustomer(c *gin.Context) {
	list, err := h.paymentService.ListByCustomer(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err, "ListPaymentsByCustomer: Error from paymentService.ListByCustomer", "Failed to fetch payments.")
		return
	}
	if list == nil {
		list = []models.Payment{}
	}
	c.JSON(http.StatusOK, list)
}
