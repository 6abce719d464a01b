// Package httpserver exposes the HTTP/JSON API handlers.
package httpserver

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/clipy/internal/assets"
	"github.com/and161185/clipy/internal/repository"
	"github.com/and161185/clipy/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	items service.ItemService
	auth  service.AuthService
	cats  repository.CategoryRepository
	uplds *assets.Manager
	log   *zap.Logger
}

// New constructs a server with injected services.
func New(items service.ItemService, auth service.AuthService, cats repository.CategoryRepository, uplds *assets.Manager, log *zap.Logger) *Server {
	return &Server{items: items, auth: auth, cats: cats, uplds: uplds, log: log}
}

// Router builds the gin engine with middleware and all API routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log), Logging(s.log))

	api := r.Group("/api")
	api.POST("/login", s.login)
	api.GET("/categories", s.listCategories)

	api.GET("/items", s.listItems)
	api.POST("/items", s.createItem)
	api.GET("/items/:id", s.getItem)
	api.PUT("/items/:id", s.updateItem)
	api.DELETE("/items/:id", s.deleteItem)
	api.POST("/items/:id/favorite", s.toggleFavorite)
	api.POST("/items/:id/complete", s.toggleCompleted)

	api.GET("/uploads/:filename", s.serveUpload)
	return r
}
