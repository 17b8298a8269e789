package domain

type User struct {
	ID     string
	Name   string
	Avatar string
}

// AsViewer converts the user into the entry stored in a viewer set.
func (u User) AsViewer() Viewer {
	return Viewer{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
