package rail

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/playback"
	apperrors "github.com/orgball2608/story-playback/pkg/errors"
)

//go:generate go run go.uber.org/mock/mockgen -source=rail.go -destination=mocks/mock.go

var (
	ErrUnknownAuthor = fmt.Errorf("rail: author has no stories: %w", apperrors.ErrNotFound)
	ErrStopped       = errors.New("rail: stopped")
)

// Avatar is one entry of the horizontal story rail.
type Avatar struct {
	AuthorID string `json:"author_id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Viewed   bool   `json:"viewed"`
	Count    int    `json:"count"`
}

type Client interface {
	// Avatars lists one entry per author, in rail order, with the viewed
	// ring computed for viewerID.
	Avatars(viewerID string) []Avatar
	Stories() []domain.Story
	Launch(authorID string, viewer *domain.User, onClose func(playback.Ended)) (*playback.Session, error)
	Refresh(ctx context.Context) error
	// Invalidate marks the cached list stale and refreshes it in the
	// background.
	Invalidate()
	Start(ctx context.Context) error
	Stop() error
}
