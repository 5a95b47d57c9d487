package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/blogspot/internal/models"
)

// selectPosts is the joined read shape; every post leaves the store with
// its author's username.
const selectPosts = `
	SELECT
		p.id,
		p.title,
		p.content,
		p.created_at,
		p.updated_at,
		p.author_id,
		u.username AS author_name
	FROM posts p
	JOIN users u ON p.author_id = u.id
`

type PostStore struct {
	DB *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{DB: db}
}

// List returns all posts, newest first.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.DB.SelectContext(ctx, &posts, selectPosts+`ORDER BY p.created_at DESC, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor returns the author's posts, newest first.
func (s *PostStore) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.DB.SelectContext(ctx, &posts, s.DB.Rebind(selectPosts+`
		WHERE p.author_id = ?
		ORDER BY p.created_at DESC, p.id
	`), authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.DB.GetContext(ctx, &post, s.DB.Rebind(selectPosts+`WHERE p.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// AuthorOf returns the stored owner id of a post without the join.
func (s *PostStore) AuthorOf(ctx context.Context, id string) (string, error) {
	var authorID string
	err := s.DB.GetContext(ctx, &authorID, s.DB.Rebind(`SELECT author_id FROM posts WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get post owner: %w", err)
	}
	return authorID, nil
}

func (s *PostStore) Insert(ctx context.Context, id, authorID, title, content string) error {
	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
		INSERT INTO posts (id, title, content, author_id)
		VALUES (?, ?, ?, ?)
	`), id, title, content, authorID)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// UpdateOwned overwrites title and content only when authorID owns the post.
// It reports whether a row was changed.
func (s *PostStore) UpdateOwned(ctx context.Context, id, authorID, title, content string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
		UPDATE posts
		SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND author_id = ?
	`), title, content, id, authorID)
	if err != nil {
		return false, fmt.Errorf("update post: %w", err)
	}
	return affected(res)
}

// DeleteOwned removes the post only when authorID owns it.
func (s *PostStore) DeleteOwned(ctx context.Context, id, authorID string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
		DELETE FROM posts WHERE id = ? AND author_id = ?
	`), id, authorID)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
