package locations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spacedout/internal/comments"
	"spacedout/internal/favorites"
)

// Handler serves the location endpoints.
type Handler struct {
	service   Service
	comments  comments.Service
	favorites favorites.Service
}

// NewHandler creates the locations handler.
func NewHandler(service Service, cmts comments.Service, favs favorites.Service) *Handler {
	return &Handler{service: service, comments: cmts, favorites: favs}
}

// RegisterRoutes mounts the location routes. Reads are public, creation
// requires a session.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/locations", h.list)
	public.GET("/locations/:id", h.get)
	authed.POST("/locations", h.create)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := h.service.Create(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to resolve or store location"})
		return
	}

	c.JSON(http.StatusCreated, loc)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list locations"})
		return
	}

	out := make([]Summary, 0, len(list))
	for i := range list {
		out = append(out, list[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"locations": out})
}

// get returns the full location shape, with comments and favoriting users.
func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load location"})
		return
	}

	cmts, err := h.comments.ListByLocation(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	favUsers, err := h.favorites.UsersFor(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favoriting users"})
		return
	}

	detail := Detail{
		Location: *loc,
		Comments: make([]comments.Summary, 0, len(cmts)),
		FavUsers: favUsers,
	}
	for i := range cmts {
		detail.Comments = append(detail.Comments, cmts[i].Summary())
	}

	c.JSON(http.StatusOK, detail)
}
