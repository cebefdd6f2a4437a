package fees

import (
	"net/http"

	"cricketleague/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/fees", h.GetFees)
}

func (h *Handler) GetFees(c *gin.Context) {
	breakdown, err := h.service.Resolve(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not resolve fees")
		return
	}
	response.Success(c, http.StatusOK, breakdown)
}
