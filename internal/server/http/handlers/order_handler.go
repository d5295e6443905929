package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/domain/model"
	"github.com/ajdiallo/chopnow/internal/server/http/dto"
)

// OrderHandler manages checkout and order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid unit_price"})
			return
		}
		items = append(items, model.OrderItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}

	delivery := model.DeliverySnapshot{
		RecipientName:  req.Delivery.RecipientName,
		RecipientPhone: req.Delivery.RecipientPhone,
		Street:         req.Delivery.Street,
		City:           req.Delivery.City,
	}

	order, err := h.facade.Checkout(c.Request.Context(), userID, items, delivery)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			writeServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		writeServerError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		default:
			writeServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		var transitionErr domainErrors.InvalidTransitionError
		switch {
		case errors.Is(err, domainErrors.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.As(err, &transitionErr):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: transitionErr.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			writeServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		var transitionErr domainErrors.InvalidTransitionError
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		case errors.As(err, &transitionErr):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: transitionErr.Error()})
		default:
			writeServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}
