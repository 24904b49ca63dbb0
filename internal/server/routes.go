package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"spacedout/internal/comments"
	"spacedout/internal/config"
	"spacedout/internal/favorites"
	"spacedout/internal/locations"
	"spacedout/internal/photos"
	"spacedout/internal/positions"
	"spacedout/internal/users"
)

// RegisterRoutes builds the gin engine and mounts every domain's routes.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	origins := strings.Split(config.GetEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)

	favoritesService := favorites.NewService(s.db)
	usersService := users.NewService(users.NewRepository(s.db), s.cfg.SessionTTL)
	commentsService := comments.NewService(s.db)
	locationsService := locations.NewService(locations.NewRepository(s.db), s.geo)
	positionsService := positions.NewService(s.db)

	public := r.Group("/")
	authed := r.Group("/")
	authed.Use(users.SessionAuth(usersService))

	users.NewHandler(usersService, favoritesService).RegisterRoutes(public, authed)
	locations.NewHandler(locationsService, commentsService, favoritesService).RegisterRoutes(public, authed)
	comments.NewHandler(commentsService).RegisterRoutes(public, authed)
	positions.NewHandler(positionsService).RegisterRoutes(authed)
	photos.NewHandler(s.storage).RegisterRoutes(authed)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]any)
	response["database"] = s.db.Health()

	if s.storage != nil {
		storageHealth := map[string]string{"status": "up"}
		if err := s.storage.Health(c.Request.Context()); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		}
		response["storage"] = storageHealth
	}

	c.JSON(http.StatusOK, response)
}
