package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boutiq/storefront/internal/server/http/dto"
)

const signatureHeader = "Stripe-Signature"

// PaymentHandler serves checkout, verification and webhook endpoints.
type PaymentHandler struct {
	facade PaymentFacade
	logger *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, logger: logger}
}

// Checkout creates the order and opens a hosted payment session for it.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, session, err := h.facade.Checkout(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		SessionID:   session.SessionID,
		URL:         session.URL,
		OrderNumber: order.OrderNumber,
	})
}

// Verify checks a session after the customer returns from the payment page.
func (h *PaymentHandler) Verify(c *gin.Context) {
	sessionID := c.Param("sessionId")

	order, paid, err := h.facade.VerifyPayment(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !paid {
		c.JSON(http.StatusOK, dto.VerifyResponse{Success: false, Message: "Payment not confirmed"})
		return
	}

	resp := dto.ToOrderResponse(*order)
	c.JSON(http.StatusOK, dto.VerifyResponse{Success: true, Order: &resp})
}

// Webhook ingests provider events. Anything past signature verification
// is acknowledged so the provider does not retry events we cannot use.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Webhook Error: unreadable payload"})
		return
	}

	if err := h.facade.HandleWebhook(c.Request.Context(), payload, c.GetHeader(signatureHeader)); err != nil {
		h.logger.Warn("webhook rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Webhook Error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
}
