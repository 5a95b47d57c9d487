package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/store"
	"github.com/vaughan-dsouza/blogspot/internal/testutil"
)

type postFixture struct {
	svc   *PostService
	posts *store.PostStore
	users *store.UserStore
	alice string
	bob   string
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	d := testutil.OpenTestDB(t)
	f := &postFixture{
		posts: store.NewPostStore(d),
		users: store.NewUserStore(d),
		alice: testutil.SeedUser(t, d, "u-alice", "alice", "a@x.com"),
		bob:   testutil.SeedUser(t, d, "u-bob", "bob", "b@x.com"),
	}
	f.svc = NewPostService(f.posts)
	return f
}

func TestPostService_CreateAndGet(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.alice, models.PostInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, f.alice, created.AuthorID)
	assert.Equal(t, "alice", created.AuthorName)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPostService_CreateValidates(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.alice, models.PostInput{Title: "Hi"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	all, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPostService_GetMissing(t *testing.T) {
	f := newPostFixture(t)
	_, err := f.svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostService_Update(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.alice, models.PostInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, p.ID, f.alice, models.PostInput{Title: "Hi again", Content: "Everyone"})
	require.NoError(t, err)
	assert.Equal(t, "Hi again", updated.Title)
	assert.Equal(t, "Everyone", updated.Content)
	assert.Equal(t, "alice", updated.AuthorName)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
}

func TestPostService_UpdateForbidden(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.alice, models.PostInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, p.ID, f.bob, models.PostInput{Title: "Hacked", Content: "by bob"})
	assert.ErrorIs(t, err, models.ErrForbidden)

	stored, err := f.svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestPostService_UpdateErrors(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, "missing", f.alice, models.PostInput{Title: "a", Content: "b"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.svc.Update(ctx, "missing", f.alice, models.PostInput{Title: "a"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPostService_Delete(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.alice, models.PostInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID, f.bob), models.ErrForbidden)
	_, err = f.svc.GetByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, p.ID, f.alice))
	_, err = f.svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID, f.alice), models.ErrNotFound)
}

func TestPostService_ListByOwner(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.alice, models.PostInput{Title: "A", Content: "a"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.bob, models.PostInput{Title: "B", Content: "b"})
	require.NoError(t, err)

	mine, err := f.svc.ListByOwner(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Title)

	none, err := f.svc.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

// racingStore simulates a post removed between the ownership check and the
// conditional write.
type racingStore struct {
	*store.PostStore
}

func (r racingStore) UpdateOwned(ctx context.Context, id, authorID, title, content string) (bool, error) {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
		return false, err
	}
	return r.PostStore.UpdateOwned(ctx, id, authorID, title, content)
}

func TestPostService_UpdateRacingDelete(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.alice, models.PostInput{Title: "Hi", Content: "World"})
	require.NoError(t, err)

	svc := NewPostService(racingStore{f.posts})
	_, err = svc.Update(ctx, p.ID, f.alice, models.PostInput{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
