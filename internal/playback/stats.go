package playback

import (
	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/pkg/formatter"
)

const EmptyStatsText = "No one has viewed this story yet"

// Stats is the owner-only overlay listing who viewed a story.
type Stats struct {
	StoryID   string
	Viewers   []domain.Viewer
	Label     string
	Empty     bool
	EmptyText string
}

// NewStats keeps the viewers in the order the data layer returned them.
func NewStats(story domain.Story) Stats {
	st := Stats{
		StoryID: story.ID,
		Viewers: append([]domain.Viewer(nil), story.Viewers...),
		Label:   formatter.FormatCount(len(story.Viewers), "view", "views"),
	}
	if len(st.Viewers) == 0 {
		st.Empty = true
		st.EmptyText = EmptyStatsText
	}
	return st
}

func (s Stats) find(viewerID string) (domain.Viewer, bool) {
	for _, v := range s.Viewers {
		if v.ID == viewerID {
			return v, true
		}
	}
	return domain.Viewer{}, false
}

// IsMyStory reports whether user created the story.
func IsMyStory(story domain.Story, user *domain.User) bool {
	return user != nil && user.ID != "" && story.UserID == user.ID
}
