package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/server/http/dto"
)

// CouponHandler manages coupon admission endpoints.
type CouponHandler struct {
	facade CouponFacade
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(facade CouponFacade) *CouponHandler {
	return &CouponHandler{facade: facade}
}

// Validate handles POST /api/coupons/validate.
// The preview never reserves a redemption slot.
func (h *CouponHandler) Validate(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	preview, err := h.facade.ValidateCoupon(c.Request.Context(), req.OrderID, userID, req.Code)
	if err != nil {
		writeCouponError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CouponPreviewResponse{
		Code:           preview.Code,
		DiscountAmount: preview.DiscountAmount.StringFixed(2),
		PayableAmount:  preview.PayableAmount.StringFixed(2),
	})
}

// Apply handles POST /api/orders/:id/coupon.
func (h *CouponHandler) Apply(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ApplyCoupon(c.Request.Context(), orderID, userID, req.Code)
	if err != nil {
		writeCouponError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Remove handles DELETE /api/orders/:id/coupon.
func (h *CouponHandler) Remove(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.RemoveCoupon(c.Request.Context(), orderID, userID)
	if err != nil {
		writeCouponError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func writeCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrNoCouponApplied):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNotOwner):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrOrderNotPending),
		errors.Is(err, domainErrors.ErrRedemptionConsumed):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrCouponInactive),
		errors.Is(err, domainErrors.ErrCouponNotStarted),
		errors.Is(err, domainErrors.ErrCouponExpired),
		errors.Is(err, domainErrors.ErrCouponLimitReached),
		errors.Is(err, domainErrors.ErrCouponValueInvalid),
		errors.Is(err, domainErrors.ErrCouponZeroesOrder):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	default:
		writeServerError(c, err)
	}
}
