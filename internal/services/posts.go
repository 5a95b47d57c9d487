package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/vaughan-dsouza/blogspot/internal/models"
)

// PostStore is the persistence the post service needs.
type PostStore interface {
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	AuthorOf(ctx context.Context, id string) (string, error)
	Insert(ctx context.Context, id, authorID, title, content string) error
	UpdateOwned(ctx context.Context, id, authorID, title, content string) (bool, error)
	DeleteOwned(ctx context.Context, id, authorID string) (bool, error)
}

type PostService struct {
	posts PostStore
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListByOwner is a public read; no ownership check applies.
func (s *PostService) ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, ownerID)
}

func (s *PostService) Create(ctx context.Context, ownerID string, in models.PostInput) (*models.Post, error) {
	if err := models.Validate(&in); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.posts.Insert(ctx, id, ownerID, in.Title, in.Content); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) Update(ctx context.Context, id, requesterID string, in models.PostInput) (*models.Post, error) {
	if err := models.Validate(&in); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, id, requesterID); err != nil {
		return nil, err
	}

	ok, err := s.posts.UpdateOwned(ctx, id, requesterID, in.Title, in.Content)
	if err != nil {
		return nil, err
	}
	if !ok {
		// deleted or reassigned since the check
		return nil, s.resolveMiss(ctx, id, requesterID)
	}
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id, requesterID string) error {
	if err := s.checkOwner(ctx, id, requesterID); err != nil {
		return err
	}

	ok, err := s.posts.DeleteOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if !ok {
		return s.resolveMiss(ctx, id, requesterID)
	}
	return nil
}

// checkOwner returns ErrNotFound for a missing post and ErrForbidden when
// the stored author differs from requesterID.
func (s *PostService) checkOwner(ctx context.Context, id, requesterID string) error {
	authorID, err := s.posts.AuthorOf(ctx, id)
	if err != nil {
		return err
	}
	if authorID != requesterID {
		return models.ErrForbidden
	}
	return nil
}

func (s *PostService) resolveMiss(ctx context.Context, id, requesterID string) error {
	if err := s.checkOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return models.ErrNotFound
}
