package model

import (
	"time"
)

// Card is a single unit of work on the board: a title, an optional
// description, an integer priority and an ordered set of tags.
//
// Every mutation refreshes UpdatedAt; CreatedAt never changes after
// construction.
type Card struct {
	id          string
	title       string
	description string
	priority    int
	createdAt   time.Time
	updatedAt   time.Time
	tags        []*Tag
}

// NewCard creates a card with priority 0, no description and no tags.
// CreatedAt and UpdatedAt are both set to the current time.
func NewCard(id, title string) *Card {
	now := time.Now()
	return &Card{
		id:        id,
		title:     title,
		createdAt: now,
		updatedAt: now,
	}
}

// ID returns the card's immutable id
func (c *Card) ID() string {
	return c.id
}

// Title returns the card's title
func (c *Card) Title() string {
	return c.title
}

// SetTitle changes the title and touches UpdatedAt
func (c *Card) SetTitle(title string) {
	c.title = title
	c.touch()
}

// Description returns the card's description, empty if never set
func (c *Card) Description() string {
	return c.description
}

// SetDescription changes the description and touches UpdatedAt
func (c *Card) SetDescription(desc string) {
	c.description = desc
	c.touch()
}

// Priority returns the card's priority. Higher means more urgent by
// convention; the value is not validated.
func (c *Card) Priority() int {
	return c.priority
}

// SetPriority changes the priority and touches UpdatedAt. Any integer is
// accepted, including negative values.
func (c *Card) SetPriority(p int) {
	c.priority = p
	c.touch()
}

// CreatedAt returns the construction time
func (c *Card) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the time of the most recent mutation
func (c *Card) UpdatedAt() time.Time {
	return c.updatedAt
}

// AddTag appends the tag unless a tag with the same id is already
// attached. Duplicates are silently ignored; UpdatedAt is touched only
// when the tag is actually added.
func (c *Card) AddTag(tag *Tag) {
	if c.HasTag(tag.ID()) {
		return
	}
	c.tags = append(c.tags, tag)
	c.touch()
}

// RemoveTagByID detaches the tag with the given id and reports whether
// one was found. UpdatedAt is touched only on success.
func (c *Card) RemoveTagByID(tagID string) bool {
	for i, tag := range c.tags {
		if tag.ID() == tagID {
			c.tags = append(c.tags[:i], c.tags[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// HasTag reports whether a tag with the given id is attached
func (c *Card) HasTag(tagID string) bool {
	for _, tag := range c.tags {
		if tag.ID() == tagID {
			return true
		}
	}
	return false
}

// Tags returns the attached tags in attachment order. Callers must not
// modify the returned slice.
func (c *Card) Tags() []*Tag {
	return c.tags
}

// ClearTags detaches all tags. UpdatedAt is touched only if there was at
// least one tag attached.
func (c *Card) ClearTags() {
	if len(c.tags) == 0 {
		return
	}
	c.tags = nil
	c.touch()
}

// Less is the card ordering contract for sort-based presentation: higher
// priority first, then older CreatedAt first on ties. Columns do not keep
// cards in this order; they keep insertion order.
func (c *Card) Less(other *Card) bool {
	if c.priority != other.priority {
		return c.priority > other.priority
	}
	return c.createdAt.Before(other.createdAt)
}

func (c *Card) touch() {
	c.updatedAt = time.Now()
}

// RestoreCard rebuilds a card from stored state without touching the
// timestamps. Used by the snapshot store only.
func RestoreCard(id, title, description string, priority int, createdAt, updatedAt time.Time, tags []*Tag) *Card {
	return &Card{
		id:          id,
		title:       title,
		description: description,
		priority:    priority,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		tags:        tags,
	}
}
