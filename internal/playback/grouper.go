package playback

import "github.com/orgball2608/story-playback/internal/domain"

// Group folds a newest-first story list into author groups, in the order
// each author is first seen. A group is viewed only when viewerID is in the
// viewer set of every story of that author; an empty viewerID never is.
func Group(stories []domain.Story, viewerID string) []domain.AuthorGroup {
	var groups []domain.AuthorGroup
	index := make(map[string]int)

	for _, s := range stories {
		i, ok := index[s.AuthorID]
		if !ok {
			i = len(groups)
			index[s.AuthorID] = i
			groups = append(groups, domain.AuthorGroup{
				AuthorID:  s.AuthorID,
				Name:      s.AuthorName,
				Avatar:    s.AuthorAvatar,
				AllViewed: true,
			})
		}
		groups[i].Stories = append(groups[i].Stories, s)
		if !s.HasViewer(viewerID) {
			groups[i].AllViewed = false
		}
	}

	return groups
}

func findGroup(groups []domain.AuthorGroup, authorID string) int {
	for i, g := range groups {
		if g.AuthorID == authorID {
			return i
		}
	}
	return -1
}
