package positions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spacedout/internal/users"
)

// Handler serves the position endpoints.
type Handler struct {
	service Service
}

// NewHandler creates the positions handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the position routes; all require a session.
func (h *Handler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/positions", h.create)
	authed.GET("/users/:id/positions", h.listByUser)
}

func (h *Handler) create(c *gin.Context) {
	user, ok := users.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := h.service.Create(c.Request.Context(), user.ID, *req.Latitude, *req.Longitude)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record position"})
		return
	}

	c.JSON(http.StatusCreated, pos)
}

func (h *Handler) listByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	list, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list positions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": list})
}
