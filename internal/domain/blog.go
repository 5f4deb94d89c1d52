package domain

import "time"

type Blog struct {
	ID        string
	Title     string
	Content   string
	Slug      string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time

	Tags []Tag
}

type Tag struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
