package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/contact", h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	if details := h.service.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent()); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "Validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Thanks for reaching out, we will reply shortly.",
	})
}
