package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shahadathhs/blogman/internal/domain"
	"github.com/shahadathhs/blogman/internal/repository"
)

const blogColumns = `id, title, content, slug, published, author_id, created_at, updated_at`

type BlogRepository struct {
	db DB
}

func NewBlogRepository(db DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog, tagIDs []string) (*domain.Blog, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO blogs (title, content, slug, published, author_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+blogColumns,
		blog.Title, blog.Content, blog.Slug, blog.Published, blog.AuthorID,
	)
	created, err := scanBlog(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO blog_tags (blog_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			created.ID, tagID,
		); err != nil {
			return nil, fmt.Errorf("attach tag %s: %w", tagID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return r.FindByID(ctx, created.ID)
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return r.findOne(ctx, `slug = $1`, slug)
}

func (r *BlogRepository) findOne(ctx context.Context, where string, arg any) (*domain.Blog, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE `+where, arg,
	)
	blog, err := scanBlog(row)
	if err != nil {
		return nil, err
	}

	tags, err := r.blogTags(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	blog.Tags = tags
	return blog, nil
}

func (r *BlogRepository) List(ctx context.Context, filter repository.BlogFilter) ([]*domain.Blog, error) {
	query := `SELECT b.id, b.title, b.content, b.slug, b.published, b.author_id, b.created_at, b.updated_at
		 FROM blogs b`
	var (
		args  []any
		where []string
	)

	if filter.TagSlug != "" {
		args = append(args, filter.TagSlug)
		query += ` JOIN blog_tags bt ON bt.blog_id = b.id
			 JOIN tags t ON t.id = bt.tag_id AND t.slug = $` + strconv.Itoa(len(args))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		where = append(where, `b.published = $`+strconv.Itoa(len(args)))
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		where = append(where, `b.author_id = $`+strconv.Itoa(len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY b.created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range blogs {
		tags, err := r.blogTags(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Tags = tags
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog, tagIDs []string) (*domain.Blog, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`UPDATE blogs
		 SET title = $2, content = $3, slug = $4, published = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+blogColumns,
		blog.ID, blog.Title, blog.Content, blog.Slug, blog.Published,
	)
	updated, err := scanBlog(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	if tagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM blog_tags WHERE blog_id = $1`, updated.ID); err != nil {
			return nil, fmt.Errorf("detach tags: %w", err)
		}
		for _, tagID := range tagIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO blog_tags (blog_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				updated.ID, tagID,
			); err != nil {
				return nil, fmt.Errorf("attach tag %s: %w", tagID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return r.FindByID(ctx, updated.ID)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) blogTags(ctx context.Context, blogID string) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.name, t.slug, t.created_at, t.updated_at
		 FROM tags t
		 JOIN blog_tags bt ON bt.tag_id = t.id
		 WHERE bt.blog_id = $1
		 ORDER BY t.name`,
		blogID,
	)
	if err != nil {
		return nil, fmt.Errorf("blog tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var b domain.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Slug, &b.Published, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	return &b, nil
}
