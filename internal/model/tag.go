package model

// Tag is a named label attachable to cards. Identity is the id; the name
// is free to change.
type Tag struct {
	id   string
	name string
}

// NewTag creates a tag with the given id and name
func NewTag(id, name string) *Tag {
	return &Tag{id: id, name: name}
}

// ID returns the tag's immutable id
func (t *Tag) ID() string {
	return t.id
}

// Name returns the tag's display name
func (t *Tag) Name() string {
	return t.name
}

// SetName renames the tag
func (t *Tag) SetName(name string) {
	t.name = name
}
