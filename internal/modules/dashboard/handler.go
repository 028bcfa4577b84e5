package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/pkg/response"
	"pixelcraft/internal/pkg/validator"
	"pixelcraft/internal/repository"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/admin")
	{
		g.GET("/quotes", h.ListQuotes)
		g.GET("/quotes/:id", h.GetQuote)
		g.PATCH("/quotes/:id/status", h.UpdateQuoteStatus)
		g.GET("/leads", h.ListLeads)
		g.GET("/leads/:id", h.GetLead)
		g.GET("/messages", h.ListMessages)
		g.GET("/stats", h.Stats)
		g.GET("/feed", h.Feed)
	}
}

func (h *Handler) ListQuotes(c *gin.Context) {
	f := repository.QuoteFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	limit, offset := pagination(c)

	quotes, total, err := h.service.ListQuotes(c.Request.Context(), f, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list quotes")
		return
	}

	response.Success(c, http.StatusOK, QuoteListResponse{Quotes: quotes, Total: total})
}

func (h *Handler) GetQuote(c *gin.Context) {
	q, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load quote")
		return
	}

	response.Success(c, http.StatusOK, q)
}

func (h *Handler) UpdateQuoteStatus(c *gin.Context) {
	var req UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if details := validator.Validate(&req); details != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid status", details)
		return
	}

	err := h.service.UpdateQuoteStatus(c.Request.Context(), c.Param("id"), domain.QuoteStatus(req.Status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		if errors.Is(err, ErrUnknownStatus) {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_STATUS", "Unknown quote status")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *Handler) ListLeads(c *gin.Context) {
	limit, offset := pagination(c)

	leads, total, err := h.service.ListLeads(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list leads")
		return
	}

	response.Success(c, http.StatusOK, LeadListResponse{Leads: leads, Total: total})
}

func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.service.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load lead")
		return
	}

	response.Success(c, http.StatusOK, lead)
}

func (h *Handler) ListMessages(c *gin.Context) {
	limit, offset := pagination(c)

	messages, total, err := h.service.ListMessages(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list messages")
		return
	}

	response.Success(c, http.StatusOK, MessageListResponse{Messages: messages, Total: total})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Feed upgrades to a websocket that receives a FeedEvent per recorded quote.
// The session middleware has already vetted the caller.
func (h *Handler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("feed upgrade failed", zap.Error(err))
		return
	}

	h.hub.ServeWS(conn)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	offset = 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
