package model

// Column is one workflow stage on a board, holding an ordered sequence of
// cards. Order is insertion order unless changed through InsertCardAt;
// lookups are linear scans, which is fine at the tens-of-cards scale this
// is built for.
type Column struct {
	id    string
	name  string
	cards []*Card
}

// NewColumn creates an empty column
func NewColumn(id, name string) *Column {
	return &Column{id: id, name: name}
}

// ID returns the column's immutable id
func (c *Column) ID() string {
	return c.id
}

// Name returns the column's name
func (c *Column) Name() string {
	return c.name
}

// SetName renames the column
func (c *Column) SetName(name string) {
	c.name = name
}

// AddCard appends the card at the end. If a card with the same id is
// already present the call is a silent no-op.
func (c *Column) AddCard(card *Card) {
	if c.HasCard(card.ID()) {
		return
	}
	c.cards = append(c.cards, card)
}

// InsertCardAt inserts the card at index, clamped to [0, Size]. An index
// at or past the end appends. Unlike AddCard, no duplicate check is
// performed; the caller is responsible for not inserting a card twice.
func (c *Column) InsertCardAt(index int, card *Card) {
	if index < 0 {
		index = 0
	}
	if index >= len(c.cards) {
		c.cards = append(c.cards, card)
		return
	}
	c.cards = append(c.cards, nil)
	copy(c.cards[index+1:], c.cards[index:])
	c.cards[index] = card
}

// RemoveCardByID removes and returns the card with the given id, or nil
// if no such card is in this column.
func (c *Column) RemoveCardByID(cardID string) *Card {
	for i, card := range c.cards {
		if card.ID() == cardID {
			c.cards = append(c.cards[:i], c.cards[i+1:]...)
			return card
		}
	}
	return nil
}

// FindCard returns the card with the given id, or nil
func (c *Column) FindCard(cardID string) *Card {
	for _, card := range c.cards {
		if card.ID() == cardID {
			return card
		}
	}
	return nil
}

// HasCard reports whether a card with the given id is in this column
func (c *Column) HasCard(cardID string) bool {
	return c.FindCard(cardID) != nil
}

// Cards returns the cards in column order. Callers must not modify the
// returned slice.
func (c *Column) Cards() []*Card {
	return c.cards
}

// Size returns the number of cards in the column
func (c *Column) Size() int {
	return len(c.cards)
}

// Empty reports whether the column has no cards
func (c *Column) Empty() bool {
	return len(c.cards) == 0
}

// Clear removes all cards
func (c *Column) Clear() {
	c.cards = nil
}
