package driver

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// articleSelect is the shared projection for article reads: the article
// row joined with its category, source and aggregated tag names.
const articleSelect = `
	SELECT a.id, a.title, a.blurb,
		   c.name AS category, a.category_id,
		   s.name AS source, a.domain_id,
		   a.article_score, a.published_on, a.created_at,
		   COALESCE(
			   array_agg(h.name ORDER BY h.name) FILTER (WHERE h.name IS NOT NULL),
			   '{}'
		   ) AS tag_names
	FROM articles a
	JOIN categories c ON a.category_id = c.id
	JOIN sources s ON a.source_id = s.id
	LEFT JOIN article_hash_tags ah ON a.id = ah.article_id
	LEFT JOIN hash_tags h ON ah.hash_tag_id = h.id
`

const articleGroupBy = `
	GROUP BY a.id, a.title, a.blurb, c.name, a.category_id, s.name,
			 a.domain_id, a.article_score, a.published_on, a.created_at
`

// PgxQuerier is the subset of the pgx pool used by the driver; tests
// substitute a mock.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresDriver struct {
	pool  PgxQuerier
	close func()
}

func NewPostgresDriver(pool PgxQuerier) *PostgresDriver {
	return &PostgresDriver{pool: pool, close: func() {}}
}

// NewPostgresDriverFromPool wraps an owned pool; Close releases it.
func NewPostgresDriverFromPool(pool *pgxpool.Pool) *PostgresDriver {
	return &PostgresDriver{pool: pool, close: pool.Close}
}

// Close closes the database connection pool.
func (d *PostgresDriver) Close() {
	if d.close != nil {
		d.close()
	}
}

// ChildCategories returns the parent→child edges for the given parent
// category ids.
func (d *PostgresDriver) ChildCategories(ctx context.Context, parentIDs []int64) ([]CategoryEdgeRecord, error) {
	query := `
		SELECT parent_category_id, child_category_id
		FROM category_associations
		WHERE parent_category_id = ANY($1)
	`

	rows, err := d.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []CategoryEdgeRecord
	for rows.Next() {
		var edge CategoryEdgeRecord
		if err := rows.Scan(&edge.ParentID, &edge.ChildID); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// DigestArticles returns the curated digest articles for a device,
// newest publication first. A device without a digest yields no rows.
func (d *PostgresDriver) DigestArticles(ctx context.Context, deviceID string) ([]*ArticleRecord, error) {
	query := articleSelect + `
		JOIN daily_digest_articles dda ON a.id = dda.article_id
		JOIN daily_digests dd ON dda.digest_id = dd.id
		JOIN devices dev ON dd.device_id = dev.id
		WHERE dev.device_id = $1
	` + articleGroupBy + `
		ORDER BY a.published_on DESC
	`

	rows, err := d.pool.Query(ctx, query, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticleRows(rows)
}

// TrendingTags aggregates hash-tag usage over articles published in
// [start, end), ordered by descending count.
func (d *PostgresDriver) TrendingTags(ctx context.Context, start, end time.Time, limit int) ([]TrendingTagRecord, error) {
	query := `
		SELECT h.id, h.name, COUNT(*) AS tag_count
		FROM articles a
		JOIN article_hash_tags ah ON a.id = ah.article_id
		JOIN hash_tags h ON ah.hash_tag_id = h.id
		WHERE a.published_on >= $1 AND a.published_on < $2
		GROUP BY h.id, h.name
		ORDER BY tag_count DESC, h.name ASC
		LIMIT $3
	`

	rows, err := d.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []TrendingTagRecord
	for rows.Next() {
		var tag TrendingTagRecord
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// GetArticles walks all articles newest-first with keyset pagination.
func (d *PostgresDriver) GetArticles(ctx context.Context, lastCreatedAt *time.Time, lastID string, limit int) ([]*ArticleRecord, *time.Time, string, error) {
	var query string
	var args []any

	if lastCreatedAt == nil || lastCreatedAt.IsZero() {
		query = articleSelect + articleGroupBy + `
			ORDER BY a.created_at DESC, a.id DESC
			LIMIT $1
		`
		args = []any{limit}
	} else {
		query = articleSelect + `
			WHERE (a.created_at, a.id) < ($1, $2)
		` + articleGroupBy + `
			ORDER BY a.created_at DESC, a.id DESC
			LIMIT $3
		`
		args = []any{*lastCreatedAt, lastID, limit}
	}

	return d.queryArticlesWithCursor(ctx, query, args)
}

// GetArticlesSince walks articles created after mark, oldest-first, with
// keyset pagination.
func (d *PostgresDriver) GetArticlesSince(ctx context.Context, mark *time.Time, lastCreatedAt *time.Time, lastID string, limit int) ([]*ArticleRecord, *time.Time, string, error) {
	var query string
	var args []any

	if lastCreatedAt == nil || lastCreatedAt.IsZero() {
		query = articleSelect + `
			WHERE a.created_at > $1
		` + articleGroupBy + `
			ORDER BY a.created_at ASC, a.id ASC
			LIMIT $2
		`
		args = []any{markOrZero(mark), limit}
	} else {
		query = articleSelect + `
			WHERE a.created_at > $1 AND (a.created_at, a.id) > ($2, $3)
		` + articleGroupBy + `
			ORDER BY a.created_at ASC, a.id ASC
			LIMIT $4
		`
		args = []any{markOrZero(mark), *lastCreatedAt, lastID, limit}
	}

	return d.queryArticlesWithCursor(ctx, query, args)
}

// GetDeletedArticles reads the deletion audit feed past lastDeletedAt.
func (d *PostgresDriver) GetDeletedArticles(ctx context.Context, lastDeletedAt *time.Time, limit int) ([]string, *time.Time, error) {
	query := `
		SELECT article_id, deleted_at
		FROM article_deletions
		WHERE deleted_at > $1
		ORDER BY deleted_at ASC
		LIMIT $2
	`

	rows, err := d.pool.Query(ctx, query, markOrZero(lastDeletedAt), limit)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var ids []string
	var finalDeletedAt *time.Time
	for rows.Next() {
		var id string
		var deletedAt time.Time
		if err := rows.Scan(&id, &deletedAt); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		finalDeletedAt = &deletedAt
	}
	if finalDeletedAt == nil {
		finalDeletedAt = lastDeletedAt
	}
	return ids, finalDeletedAt, rows.Err()
}

// GetLatestCreatedAt returns the creation time of the newest article, or
// nil for an empty store.
func (d *PostgresDriver) GetLatestCreatedAt(ctx context.Context) (*time.Time, error) {
	var createdAt time.Time
	err := d.pool.QueryRow(ctx, `SELECT created_at FROM articles ORDER BY created_at DESC LIMIT 1`).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &createdAt, nil
}

// GetArticleByID returns one article with tags, or nil when no row
// matches.
func (d *PostgresDriver) GetArticleByID(ctx context.Context, articleID string) (*ArticleRecord, error) {
	query := articleSelect + `
		WHERE a.id = $1
	` + articleGroupBy

	rows, err := d.pool.Query(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles, err := scanArticleRows(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}
	return articles[0], nil
}

func (d *PostgresDriver) queryArticlesWithCursor(ctx context.Context, query string, args []any) ([]*ArticleRecord, *time.Time, string, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, "", err
	}
	defer rows.Close()

	articles, err := scanArticleRows(rows)
	if err != nil {
		return nil, nil, "", err
	}

	var finalCreatedAt *time.Time
	var finalID string
	if len(articles) > 0 {
		last := articles[len(articles)-1]
		finalCreatedAt = &last.CreatedAt
		finalID = last.ID
	}
	return articles, finalCreatedAt, finalID, nil
}

func scanArticleRows(rows pgx.Rows) ([]*ArticleRecord, error) {
	var articles []*ArticleRecord
	for rows.Next() {
		var article ArticleRecord
		var tagNames []string

		err := rows.Scan(
			&article.ID, &article.Title, &article.Blurb,
			&article.CategoryName, &article.CategoryID,
			&article.SourceName, &article.DomainID,
			&article.ArticleScore, &article.PublishedOn, &article.CreatedAt,
			&tagNames,
		)
		if err != nil {
			return nil, err
		}

		tags := make([]string, 0, len(tagNames))
		for _, name := range tagNames {
			if name != "" {
				tags = append(tags, name)
			}
		}
		article.HashTags = tags
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

func markOrZero(mark *time.Time) time.Time {
	if mark == nil {
		return time.Time{}
	}
	return *mark
}
