package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/clipy/internal/assets"
	"github.com/and161185/clipy/internal/errs"
	"github.com/and161185/clipy/internal/model"
)

// itemJSON is the wire representation of an item. Timestamps are
// RFC3339 UTC; completedAt and updatedAt may be null.
type itemJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Category    string  `json:"category"`
	UserID      string  `json:"userId"`
	Favorite    bool    `json:"favorite"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt"`
	OrderIndex  int     `json:"order"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type userJSON struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
}

type categoryJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func toItemJSON(it model.Item) itemJSON {
	out := itemJSON{
		ID: it.ID, Title: it.Title, Content: it.Content,
		Category: it.Category, UserID: it.UserID,
		Favorite: it.Favorite, Completed: it.Completed,
		OrderIndex: it.OrderIndex,
		CreatedAt:  it.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  it.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if it.CompletedAt != nil {
		ts := it.CompletedAt.UTC().Format(time.RFC3339)
		out.CompletedAt = &ts
	}
	return out
}

// writeError maps sentinel errors to statuses; anything unexpected is a
// logged 500 with no internal detail exposed.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Titolo e categoria richiesti"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Item non trovato"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenziali non valide"})
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Troppi tentativi"})
	default:
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Errore server"})
	}
}

// --- Auth ---

func (s *Server) login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Username == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nome e password richiesti"})
		return
	}
	u, token, err := s.auth.LoginWithIP(c.Request.Context(), in.Username, in.Password, c.ClientIP())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     u.ID,
		"email":  u.Email,
		"name":   u.Name,
		"avatar": u.Avatar,
		"color":  u.Color,
		"token":  token,
	})
}

// --- Categories ---

func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.cats.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]categoryJSON, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryJSON(cat))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// --- Items ---

func (s *Server) listItems(c *gin.Context) {
	items, err := s.items.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toItemJSON(it))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type itemInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	UserID   string `json:"userId"`
}

func (s *Server) createItem(c *gin.Context) {
	var in itemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Titolo e categoria richiesti"})
		return
	}
	it, err := s.items.Create(c.Request.Context(), model.ItemDraft{
		Title: in.Title, Content: in.Content, Category: in.Category, UserID: in.UserID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItemJSON(*it))
}

func (s *Server) getItem(c *gin.Context) {
	it, err := s.items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemJSON(*it))
}

func (s *Server) updateItem(c *gin.Context) {
	var in itemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Titolo e categoria richiesti"})
		return
	}
	it, err := s.items.Update(c.Request.Context(), c.Param("id"), model.ItemDraft{
		Title: in.Title, Content: in.Content, Category: in.Category, UserID: in.UserID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemJSON(*it))
}

func (s *Server) deleteItem(c *gin.Context) {
	if err := s.items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item eliminato"})
}

func (s *Server) toggleFavorite(c *gin.Context) {
	it, err := s.items.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemJSON(*it))
}

func (s *Server) toggleCompleted(c *gin.Context) {
	it, err := s.items.ToggleCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemJSON(*it))
}

// --- Uploads ---

func (s *Server) serveUpload(c *gin.Context) {
	filename := c.Param("filename")
	f, err := s.uplds.Open(filename)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, st.Size(), assets.ContentType(filename), f, map[string]string{
		"Cache-Control": "public, max-age=31536000",
	})
}
