package comments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"spacedout/internal/users"
)

// Handler serves the comment endpoints.
type Handler struct {
	service Service
}

// NewHandler creates the comments handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts comment routes. Reads are public, writes require a
// session.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/locations/:id/comments", h.listByLocation)
	authed.POST("/locations/:id/comments", h.create)
	authed.DELETE("/comments/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	user, ok := users.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	locationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	number := -1
	if req.Number != nil {
		number = *req.Number
	}

	comment, err := h.service.Create(c.Request.Context(), user.ID, locationID, req.Text, number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment.Response(time.Now()))
}

func (h *Handler) listByLocation(c *gin.Context) {
	locationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	list, err := h.service.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	now := time.Now()
	out := make([]Response, 0, len(list))
	for i := range list {
		out = append(out, list[i].Response(now))
	}

	c.JSON(http.StatusOK, gin.H{"comments": out})
}

func (h *Handler) delete(c *gin.Context) {
	user, ok := users.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), user.ID, commentID); err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
