package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"student-lens/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const articleColumns = "id, title, body, author_id, stage, category_suggested, category_final, views, created_at, updated_at"

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

// Create inserts a new article.
func (r *PostgresArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO articles (id, title, body, author_id, stage, category_suggested, category_final, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, a.ID, a.Title, a.Body, a.AuthorID, a.Stage, a.CategorySuggested, a.CategoryFinal, a.Views)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Get returns the article with the given id, or nil when absent.
func (r *PostgresArticleRepository) Get(ctx context.Context, id string) (*domain.Article, error) {
	var a domain.Article
	err := r.pool.QueryRow(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id = $1", id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.Stage, &a.CategorySuggested, &a.CategoryFinal, &a.Views, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query article: %w", err)
	}
	return &a, nil
}

// Update persists title, body, and category changes. The stage and view
// counters are never touched here.
func (r *PostgresArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET title = $1, body = $2, category_suggested = $3, category_final = $4, updated_at = NOW()
		WHERE id = $5
	`, a.Title, a.Body, a.CategorySuggested, a.CategoryFinal, a.ID)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStage moves the article from one stage to another with a
// compare-and-swap on the current stage, so two racing transitions resolve to
// exactly one winner. The loser gets domain.ErrInvalidTransition.
func (r *PostgresArticleRepository) UpdateStage(ctx context.Context, id string, from, to domain.Stage) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE articles SET stage = $1, updated_at = NOW()
		WHERE id = $2 AND stage = $3
	`, to, id, from)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check article: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

// Delete removes the article. Its viewer set goes with it via FK cascade.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns articles matching the filter, newest first.
func (r *PostgresArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error) {
	q := psql.Select(articleColumns).From("articles").OrderBy("created_at DESC")
	if len(filter.Stages) > 0 {
		stages := make([]string, len(filter.Stages))
		for i, s := range filter.Stages {
			stages[i] = string(s)
		}
		q = q.Where(sq.Eq{"stage": stages})
	}
	if filter.AuthorID != "" {
		q = q.Where(sq.Eq{"author_id": filter.AuthorID})
	}
	if filter.Category != "" {
		q = q.Where(sq.Eq{"COALESCE(category_final, category_suggested)": filter.Category})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.Stage, &a.CategorySuggested, &a.CategoryFinal, &a.Views, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// RecordView adds the viewer to the article's viewer set and, when the viewer
// is new, increments the article's view counter and the author's total views
// in the same transaction. Re-views are a no-op. The returned bool reports
// whether a view was recorded.
func (r *PostgresArticleRepository) RecordView(ctx context.Context, articleID, viewerID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		INSERT INTO article_views (article_id, viewer_id)
		VALUES ($1, $2)
		ON CONFLICT (article_id, viewer_id) DO NOTHING
	`, articleID, viewerID)
	if err != nil {
		return false, fmt.Errorf("insert view: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, articleID); err != nil {
		return false, fmt.Errorf("increment views: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE users SET total_views = total_views + 1
		WHERE id = (SELECT author_id FROM articles WHERE id = $1)
	`, articleID); err != nil {
		return false, fmt.Errorf("increment author views: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit view: %w", err)
	}
	return true, nil
}
