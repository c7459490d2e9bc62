package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tingitingi/rental-booking/internal/model"
)

// ArticleRepo provides persistence for blog articles.
type ArticleRepo struct {
	db *sql.DB
}

// NewArticleRepo returns an ArticleRepo bound to the given database.
func NewArticleRepo(db *sql.DB) *ArticleRepo { return &ArticleRepo{db: db} }

const articleCols = `slug, title, content, cover_image, published, created_at, updated_at`

// Create inserts a new article.  A slug collision surfaces as ErrDuplicate.
func (r *ArticleRepo) Create(ctx context.Context, a *model.Article) error {
	const q = `INSERT INTO articles (slug, title, content, cover_image, published)
       VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, a.Slug, a.Title, a.Content, a.CoverImage, a.Published); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return r.reload(ctx, a)
}

// GetBySlug returns an article.  With publishedOnly set, drafts behave as if
// they did not exist.
func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Article, error) {
	q := `SELECT ` + articleCols + ` FROM articles WHERE slug = ?`
	if publishedOnly {
		q += ` AND published = 1`
	}
	a, err := scanArticle(r.db.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	return a, err
}

// List returns articles newest first.  With publishedOnly set, drafts are
// excluded, matching the public blog listing.
func (r *ArticleRepo) List(ctx context.Context, publishedOnly bool) ([]model.Article, error) {
	q := `SELECT ` + articleCols + ` FROM articles`
	if publishedOnly {
		q += ` WHERE published = 1`
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Update persists every mutable field of the article.
func (r *ArticleRepo) Update(ctx context.Context, a *model.Article) error {
	const q = `UPDATE articles SET title = ?, content = ?, cover_image = ?, published = ? WHERE slug = ?`
	if _, err := r.db.ExecContext(ctx, q, a.Title, a.Content, a.CoverImage, a.Published, a.Slug); err != nil {
		return err
	}
	return r.reload(ctx, a)
}

// Delete removes an article permanently.
func (r *ArticleRepo) Delete(ctx context.Context, slug string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, slug)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepo) reload(ctx context.Context, a *model.Article) error {
	q := `SELECT ` + articleCols + ` FROM articles WHERE slug = ?`
	fresh, err := scanArticle(r.db.QueryRowContext(ctx, q, a.Slug))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrArticleNotFound
	}
	if err != nil {
		return err
	}
	*a = *fresh
	return nil
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var (
		a     model.Article
		cover sql.NullString
	)
	err := row.Scan(&a.Slug, &a.Title, &a.Content, &cover, &a.Published, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.CoverImage = cover.String
	return &a, nil
}
