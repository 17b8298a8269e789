package playback

import (
	"testing"

	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewedBy(ids ...string) []domain.Viewer {
	out := make([]domain.Viewer, len(ids))
	for i, id := range ids {
		out[i] = domain.Viewer{ID: id}
	}
	return out
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil, "me"))
}

func TestGroupPreservesFirstSeenOrder(t *testing.T) {
	stories := []domain.Story{
		{ID: "b1", AuthorID: "b", AuthorName: "Bakery", AuthorAvatar: "b-new.png"},
		{ID: "a1", AuthorID: "a", AuthorName: "Ann"},
		{ID: "b2", AuthorID: "b", AuthorName: "Bakery", AuthorAvatar: "b-old.png"},
		{ID: "a2", AuthorID: "a", AuthorName: "Ann"},
	}

	groups := Group(stories, "me")

	require.Len(t, groups, 2)
	assert.Equal(t, "b", groups[0].AuthorID)
	assert.Equal(t, "b-new.png", groups[0].Avatar)
	assert.Equal(t, []string{"b1", "b2"}, storyIDs(groups[0].Stories))
	assert.Equal(t, "a", groups[1].AuthorID)
	assert.Equal(t, []string{"a1", "a2"}, storyIDs(groups[1].Stories))
}

func TestGroupAllViewed(t *testing.T) {
	tests := []struct {
		name    string
		viewer  string
		stories []domain.Story
		want    bool
	}{
		{
			name:   "every story viewed",
			viewer: "me",
			stories: []domain.Story{
				{ID: "1", AuthorID: "a", Viewers: viewedBy("x", "me")},
				{ID: "2", AuthorID: "a", Viewers: viewedBy("me")},
			},
			want: true,
		},
		{
			name:   "one unviewed story flips the group",
			viewer: "me",
			stories: []domain.Story{
				{ID: "1", AuthorID: "a", Viewers: viewedBy("me")},
				{ID: "2", AuthorID: "a", Viewers: viewedBy("x")},
				{ID: "3", AuthorID: "a", Viewers: viewedBy("me")},
			},
			want: false,
		},
		{
			name:   "no viewer signed in",
			viewer: "",
			stories: []domain.Story{
				{ID: "1", AuthorID: "a", Viewers: viewedBy("me")},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := Group(tt.stories, tt.viewer)
			require.Len(t, groups, 1)
			assert.Equal(t, tt.want, groups[0].AllViewed)
		})
	}
}

func TestGroupAddingViewOnlyMovesTowardsViewed(t *testing.T) {
	stories := []domain.Story{
		{ID: "1", AuthorID: "a"},
		{ID: "2", AuthorID: "a"},
	}
	assert.False(t, Group(stories, "me")[0].AllViewed)

	stories[0].Viewers = viewedBy("me")
	assert.False(t, Group(stories, "me")[0].AllViewed)

	stories[1].Viewers = viewedBy("me")
	assert.True(t, Group(stories, "me")[0].AllViewed)
}

func storyIDs(stories []domain.Story) []string {
	out := make([]string, len(stories))
	for i, s := range stories {
		out[i] = s.ID
	}
	return out
}
