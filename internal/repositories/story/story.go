package story

import (
	"context"
	"fmt"

	"github.com/orgball2608/story-playback/internal/domain"
	apperrors "github.com/orgball2608/story-playback/pkg/errors"
)

var (
	ErrNotFound  = fmt.Errorf("story: %w", apperrors.ErrNotFound)
	ErrForbidden = fmt.Errorf("story viewers: %w", apperrors.ErrForbidden)
)

//go:generate go run go.uber.org/mock/mockgen -source=story.go -destination=mocks/mock.go

// Repository is the data layer the playback engine consumes.
type Repository interface {
	// List returns every live story newest first, with viewer sets attached.
	List(ctx context.Context) ([]domain.Story, error)

	// RecordView adds viewer to the story's viewer set. Recording the same
	// pair twice is a no-op.
	RecordView(ctx context.Context, storyID string, viewer domain.User) error

	// ListViewers returns the viewer set of a story. Only the story's owner
	// may read it.
	ListViewers(ctx context.Context, storyID, ownerID string) ([]domain.Viewer, error)

	GetUser(ctx context.Context, id string) (*domain.User, error)
}
