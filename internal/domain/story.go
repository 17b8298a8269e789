package domain

import "time"

// Story is a single ephemeral media post.
type Story struct {
	ID            string
	AuthorID      string // person or business the story is published under
	AuthorName    string
	AuthorAvatar  string
	UserID        string // account that created the story
	Media         string
	Caption       string
	ContentConfig *ContentConfig
	Viewers       []Viewer
	CreatedAt     time.Time
}

// HasViewer reports whether id is in the story's viewer set.
func (s Story) HasViewer(id string) bool {
	if id == "" {
		return false
	}
	for _, v := range s.Viewers {
		if v.ID == id {
			return true
		}
	}
	return false
}

type ContentConfig struct {
	Transform Transform `json:"transform"`
	Elements  []Element `json:"elements"`
}

// Transform is the pan/zoom applied to the media.
type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Element is a free-form text or sticker overlay. X and Y are percentages.
type Element struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Background string  `json:"bg"`
	Color      string  `json:"color"`
	Text       string  `json:"text"`
}

type Viewer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
