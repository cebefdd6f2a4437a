package payment

import (
	"errors"
	"net/http"
	"strconv"

	"cricketleague/internal/modules/registration"
	"cricketleague/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/registrations/:id/payment", h.StartAttempt)
	rg.POST("/payments/verify", h.Verify)
	rg.POST("/payments/failure", h.Failure)
	rg.POST("/payments/cancel", h.Cancel)
}

func (h *Handler) StartAttempt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid registration id")
		return
	}

	resp, err := h.service.StartAttempt(c.Request.Context(), id)
	if err != nil {
		h.loggerf("level=error msg=start payment attempt failed registration_id=%d err=%v", id, err)
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid callback payload")
		return
	}

	reg, err := h.service.HandleSuccess(c.Request.Context(), req)
	if err != nil {
		h.loggerf("level=error msg=payment verification callback failed order_id=%s payment_id=%s err=%v", req.OrderID, req.PaymentID, err)
		if errors.Is(err, ErrRecordingDelayed) {
			// The payment is verified; only the registration row write is
			// pending. Never surface this as a failure to the payer.
			response.Success(c, http.StatusAccepted, gin.H{
				"payment_id": req.PaymentID,
				"message":    "payment received; your registration will be confirmed shortly",
			})
			return
		}
		if errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrAmountMismatch) || errors.Is(err, ErrVerification) {
			response.ErrorWithDetails(c, http.StatusForbidden, "VERIFICATION_FAILED",
				"we could not verify this payment; please contact support with your payment id",
				gin.H{"payment_id": req.PaymentID})
			return
		}
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reg)
}

func (h *Handler) Failure(c *gin.Context) {
	var req FailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid callback payload")
		return
	}

	if err := h.service.HandleFailure(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "failure recorded"})
}

func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid callback payload")
		return
	}

	if err := h.service.HandleDismiss(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "cancellation recorded"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAttemptInFlight):
		response.Error(c, http.StatusConflict, "ATTEMPT_IN_FLIGHT", err.Error())
	case errors.Is(err, ErrAlreadyCompleted):
		response.Error(c, http.StatusConflict, "ALREADY_COMPLETED", err.Error())
	case errors.Is(err, ErrStaleOrder):
		response.Error(c, http.StatusConflict, "STALE_ORDER", err.Error())
	case errors.Is(err, ErrAttemptNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, registration.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrGateway):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "could not reach the payment gateway; please try again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
	}
}
