package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/server/http/dto"
)

// respondError maps domain errors onto HTTP statuses. Messages from
// validation and stock errors pass through verbatim so the storefront
// can surface them; everything else gets a generic body.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Message})
		return
	}

	var productNotFound *domainErrors.ProductNotFoundError
	if errors.As(err, &productNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: productNotFound.Error()})
		return
	}

	var insufficientStock *domainErrors.InsufficientStockError
	if errors.As(err, &insufficientStock) {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: insufficientStock.Error()})
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, domainErrors.ErrGateway):
		logger.Error("payment gateway failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Payment service unavailable"})
	default:
		logger.Error("unhandled request error",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
