package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shahadathhs/blogman/internal/domain"
)

const tagColumns = `id, name, slug, created_at, updated_at`

type TagRepository struct {
	db DB
}

func NewTagRepository(db DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING `+tagColumns,
		tag.Name, tag.Slug,
	)
	created, err := scanTag(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*domain.Tag, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)
	return scanTag(row)
}

func (r *TagRepository) List(ctx context.Context, limit, offset int) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return collectTags(rows)
}

func (r *TagRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2`,
		term, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	return collectTags(rows)
}

func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tags SET name = $2, slug = $3, updated_at = NOW() WHERE id = $1 RETURNING `+tagColumns,
		tag.ID, tag.Name, tag.Slug,
	)
	updated, err := scanTag(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

func collectTags(rows pgx.Rows) ([]*domain.Tag, error) {
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	return &t, nil
}
