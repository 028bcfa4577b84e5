package intake

import (
	"errors"
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
	public.POST("/quote-intake", h.Submit)
}

// Submit handles POST /api/v1/quote-intake. Responses follow the site's form
// contract: 201 with a real quote id, 200 with a backup id when persistence
// was unavailable, 400 with per-field details on bad input. A malformed body
// is the one truly unrecoverable case.
func (h *Handler) Submit(c *gin.Context) {
	var req QuoteSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	meta := RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.service.SubmitQuote(c.Request.Context(), &req, meta)
	if err != nil {
		var vErr *ValidationFailedError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"error":   "Validation failed",
				"details": vErr.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"error":   "Internal error",
			"message": "Something went wrong, please try again.",
		})
		return
	}

	status := http.StatusCreated
	if result.Note != "" {
		status = http.StatusOK
	}
	c.JSON(status, result)
}
