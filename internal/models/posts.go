package models

import "time"

// Post is a post row joined with its author's username.
type Post struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
	AuthorID   string    `db:"author_id" json:"author_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
}

type PostInput struct {
	Title   string `json:"title" validate:"required,notblank,max=200"`
	Content string `json:"content" validate:"required,notblank"`
}
