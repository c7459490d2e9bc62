package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/repository"
)

// ArticleHandler serves the public blog.  Drafts are invisible here; the
// admin endpoints see everything.
type ArticleHandler struct {
	Articles *repository.ArticleRepo
}

// NewArticleHandler constructs an ArticleHandler.
func NewArticleHandler(articles *repository.ArticleRepo) *ArticleHandler {
	if articles == nil {
		panic("nil repository passed to NewArticleHandler")
	}
	return &ArticleHandler{Articles: articles}
}

// List handles GET /api/articles, newest first, published only.
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.Articles.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:slug.  An unpublished slug reads as 404.
func (h *ArticleHandler) Get(c echo.Context) error {
	a, err := h.Articles.GetBySlug(c.Request().Context(), c.Param("slug"), true)
	if errors.Is(err, repository.ErrArticleNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, a)
}
