package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/server/http/dto"
)

// OrderHandler serves order creation and lookup endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create validates the cart, reserves stock and persists the order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// GetByID returns a single order with its items.
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid order id"})
		return
	}

	order, err := h.facade.OrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// Lookup dispatches the two-segment order routes. The router cannot hold
// /orders/number/:n and /orders/:id side by side, so both lookups share
// a wildcard pair and split on the first segment here.
func (h *OrderHandler) Lookup(c *gin.Context) {
	value := c.Param("value")
	switch c.Param("id") {
	case "number":
		h.getByNumber(c, value)
	case "email":
		h.listByEmail(c, value)
	default:
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	}
}

func (h *OrderHandler) getByNumber(c *gin.Context, number string) {
	order, err := h.facade.OrderByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

func (h *OrderHandler) listByEmail(c *gin.Context, email string) {
	orders, err := h.facade.OrdersByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// List returns all orders, newest first. Admin only.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// UpdateStatus applies a fulfillment transition. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid order id"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, dto.ToOrderResponse(order))
	}
	return out
}
