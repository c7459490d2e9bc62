package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/repository"
)

// AdminArticleHandler manages blog articles, drafts included.
type AdminArticleHandler struct {
	Articles *repository.ArticleRepo
}

// NewAdminArticleHandler constructs an AdminArticleHandler.
func NewAdminArticleHandler(articles *repository.ArticleRepo) *AdminArticleHandler {
	if articles == nil {
		panic("nil repository passed to NewAdminArticleHandler")
	}
	return &AdminArticleHandler{Articles: articles}
}

type createArticleRequest struct {
	Slug       string `json:"slug" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"coverImage"`
	Published  bool   `json:"isPublished"`
}

type updateArticleRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CoverImage *string `json:"coverImage"`
	Published  *bool   `json:"isPublished"`
}

// List handles GET /api/admin/articles, drafts included.
func (h *AdminArticleHandler) List(c echo.Context) error {
	articles, err := h.Articles.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/admin/articles/:slug.
func (h *AdminArticleHandler) Get(c echo.Context) error {
	a, err := h.Articles.GetBySlug(c.Request().Context(), c.Param("slug"), false)
	if errors.Is(err, repository.ErrArticleNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, a)
}

// Create handles POST /api/admin/articles.  The slug is the public URL, so
// collisions are 409.
func (h *AdminArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a := model.Article{
		Slug:       req.Slug,
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	if err := h.Articles.Create(c.Request().Context(), &a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an article with this slug already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "article created",
		"article": a,
	})
}

// Update handles PUT /api/admin/articles/:slug.
func (h *AdminArticleHandler) Update(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	a, err := h.Articles.GetBySlug(ctx, c.Param("slug"), false)
	if errors.Is(err, repository.ErrArticleNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.CoverImage != nil {
		a.CoverImage = *req.CoverImage
	}
	if req.Published != nil {
		a.Published = *req.Published
	}

	if err := h.Articles.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "article updated",
		"article": a,
	})
}

// Delete handles DELETE /api/admin/articles/:slug.
func (h *AdminArticleHandler) Delete(c echo.Context) error {
	err := h.Articles.Delete(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, repository.ErrArticleNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "article deleted"})
}
