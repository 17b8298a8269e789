package domain

// AuthorGroup is derived from a story list and never persisted.
type AuthorGroup struct {
	AuthorID  string
	Name      string
	Avatar    string
	Stories   []Story
	AllViewed bool
}
