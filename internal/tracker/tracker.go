package tracker

import (
	"context"

	"github.com/orgball2608/story-playback/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=tracker.go -destination=mocks/mock.go

type Client interface {
	// Record notes that viewer saw the story. It never blocks the caller;
	// failures are logged and dropped.
	Record(storyID string, viewer domain.User)

	// Viewers returns the story's viewer set if requester owns the story.
	Viewers(ctx context.Context, story domain.Story, requester *domain.User) ([]domain.Viewer, error)
}
