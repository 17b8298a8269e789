package story

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/orgball2608/story-playback/internal/domain"
)

// MemoryRepository keeps stories in process. The rail and tracker tests run
// against it.
type MemoryRepository struct {
	mu      sync.RWMutex
	stories []domain.Story
	users   map[string]domain.User
}

func NewMemoryRepository(stories []domain.Story, users ...domain.User) *MemoryRepository {
	r := &MemoryRepository{users: make(map[string]domain.User)}
	for _, s := range stories {
		r.add(s)
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Add(s domain.Story) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add(s)
}

func (r *MemoryRepository) add(s domain.Story) {
	s.Viewers = slices.Clone(s.Viewers)
	r.stories = append(r.stories, s)
	sort.SliceStable(r.stories, func(i, j int) bool {
		return r.stories[i].CreatedAt.After(r.stories[j].CreatedAt)
	})
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Story, len(r.stories))
	for i, s := range r.stories {
		s.Viewers = slices.Clone(s.Viewers)
		out[i] = s
	}
	return out, nil
}

func (r *MemoryRepository) RecordView(_ context.Context, storyID string, viewer domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(storyID)
	if i < 0 {
		return ErrNotFound
	}
	if r.stories[i].HasViewer(viewer.ID) {
		return nil
	}
	r.stories[i].Viewers = append(r.stories[i].Viewers, viewer.AsViewer())
	return nil
}

func (r *MemoryRepository) ListViewers(_ context.Context, storyID, ownerID string) ([]domain.Viewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.find(storyID)
	if i < 0 {
		return nil, ErrNotFound
	}
	if r.stories[i].UserID != ownerID {
		return nil, ErrForbidden
	}
	return slices.Clone(r.stories[i].Viewers), nil
}

func (r *MemoryRepository) GetUser(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) find(storyID string) int {
	for i, s := range r.stories {
		if s.ID == storyID {
			return i
		}
	}
	return -1
}
