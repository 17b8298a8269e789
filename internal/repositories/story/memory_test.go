package story

import (
	"context"
	"testing"
	"time"

	"github.com/orgball2608/story-playback/internal/domain"
	apperrors "github.com/orgball2608/story-playback/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryListNewestFirst(t *testing.T) {
	now := time.Now()
	repo := NewMemoryRepository([]domain.Story{
		{ID: "old", AuthorID: "a", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", AuthorID: "a", CreatedAt: now},
	})
	repo.Add(domain.Story{ID: "mid", AuthorID: "b", CreatedAt: now.Add(-time.Minute)})

	stories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "new", stories[0].ID)
	assert.Equal(t, "mid", stories[1].ID)
	assert.Equal(t, "old", stories[2].ID)
}

func TestMemoryRepositoryRecordViewIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository([]domain.Story{{ID: "s1", UserID: "owner"}})
	viewer := domain.User{ID: "u1", Name: "Ann"}

	require.NoError(t, repo.RecordView(ctx, "s1", viewer))
	require.NoError(t, repo.RecordView(ctx, "s1", viewer))

	viewers, err := repo.ListViewers(ctx, "s1", "owner")
	require.NoError(t, err)
	assert.Equal(t, []domain.Viewer{{ID: "u1", Name: "Ann"}}, viewers)
}

func TestMemoryRepositoryListViewersOwnerOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository([]domain.Story{{ID: "s1", UserID: "owner"}})

	_, err := repo.ListViewers(ctx, "s1", "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = repo.ListViewers(ctx, "missing", "owner")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryRepositoryListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository([]domain.Story{{ID: "s1"}})

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.RecordView(ctx, "s1", domain.User{ID: "u1"}))

	assert.Empty(t, first[0].Viewers)
}

func TestMemoryRepositoryGetUser(t *testing.T) {
	repo := NewMemoryRepository(nil, domain.User{ID: "u1", Name: "Ann"})

	u, err := repo.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	_, err = repo.GetUser(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}
