package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	"github.com/ajdiallo/chopnow/internal/server/http/dto"
)

const maxWebhookBody = 1 << 20

// PaymentHandler manages payment settlement endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initialize handles POST /api/orders/:id/payment.
func (h *PaymentHandler) Initialize(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.InitializePaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
	}

	outcome, err := h.facade.InitializePayment(c.Request.Context(), orderID, userID, req.SaveInstrument)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.InitializePaymentResponse{
		Reference:        outcome.Reference,
		AuthorizationURL: outcome.AuthorizationURL,
		AccessCode:       outcome.AccessCode,
	})
}

// Verify handles GET /api/payments/:reference.
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID := CurrentUserID(c)
	reference := c.Param("reference")
	if reference == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.VerifyPayment(c.Request.Context(), reference, userID)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(result))
}

// Charge handles POST /api/orders/:id/charge.
func (h *PaymentHandler) Charge(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID, ok := OrderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.ChargeInstrument(c.Request.Context(), orderID, userID, req.InstrumentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrGatewayDeclined) && result != nil {
			c.JSON(http.StatusPaymentRequired, toPaymentResponse(result))
			return
		}
		writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(result))
}

// Instruments handles GET /api/instruments.
func (h *PaymentHandler) Instruments(c *gin.Context) {
	userID := CurrentUserID(c)
	instruments, err := h.facade.Instruments(c.Request.Context(), userID)
	if err != nil {
		writeServerError(c, err)
		return
	}
	if len(instruments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.InstrumentResponse, 0, len(instruments))
	for _, in := range instruments {
		resp = append(resp, dto.InstrumentResponse{
			ID:       in.ID,
			CardType: in.CardType,
			Last4:    in.Last4,
			Bank:     in.Bank,
			Reusable: in.Reusable,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook handles POST /api/webhooks/:provider. The endpoint is
// unauthenticated; trust comes from the signature check alone.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	provider := c.Param("provider")
	signature := c.GetHeader("X-Paystack-Signature")

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.HandleWebhook(c.Request.Context(), provider, payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrBadSignature):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			// Non-2xx makes the provider redeliver later.
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

func writePaymentError(c *gin.Context, err error) {
	var alreadyPaid domainErrors.AlreadyPaidError
	var gatewayErr domainErrors.GatewayError
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrNotOwner):
		c.Status(http.StatusForbidden)
	case errors.As(err, &alreadyPaid):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: alreadyPaid.Error(), Reference: alreadyPaid.Reference})
	case errors.Is(err, domainErrors.ErrOrderTerminal):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInstrumentNotReusable):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: gatewayErr.Error()})
	default:
		writeServerError(c, err)
	}
}
