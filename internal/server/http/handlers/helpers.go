package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/server/http/dto"
	"github.com/ajdiallo/chopnow/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// OrderIDParam parses the :id path parameter.
func OrderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeServerError distinguishes retryable lock contention from fatal
// failures. Storage internals never reach the response body.
func writeServerError(c *gin.Context, err error) {
	var transient domainErrors.TransientStoreError
	if errors.As(err, &transient) {
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "temporarily unavailable, retry the request"})
		return
	}
	c.Status(http.StatusInternalServerError)
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:             order.ID,
		Status:         string(order.Status),
		TotalAmount:    order.TotalAmount.StringFixed(2),
		DiscountAmount: order.DiscountAmount.StringFixed(2),
		PayableAmount:  order.PayableAmount.StringFixed(2),
		CouponID:       order.CouponID,
		CreatedAt:      order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}
	return resp
}

func toPaymentResponse(result *model.SettlementResult) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		OrderID:     result.OrderID,
		OrderStatus: string(result.OrderStatus),
	}
	if result.Payment != nil {
		resp.Reference = result.Payment.Reference
		resp.Status = string(result.Payment.Status)
		resp.PaidAt = result.Payment.PaidAt
	}
	return resp
}
