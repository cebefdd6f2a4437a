package admin

import (
	"errors"
	"net/http"
	"strconv"

	"cricketleague/internal/pkg/response"
	"cricketleague/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/registrations", h.ListRegistrations)
	rg.GET("/admin/registrations/:id", h.GetRegistration)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid login payload", fieldErrs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListRegistrations(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid query parameters")
		return
	}

	res, err := h.service.ListRegistrations(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetRegistration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid registration id")
		return
	}

	detail, err := h.service.GetRegistration(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRegistrationMissing) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
		return
	}
	response.Success(c, http.StatusOK, detail)
}
