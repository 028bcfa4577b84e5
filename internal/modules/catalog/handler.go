package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixelcraft/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/services", h.ListServices)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load services")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"services": services})
}
