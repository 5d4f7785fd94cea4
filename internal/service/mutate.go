package service

import (
	"github.com/google/uuid"
	"github.com/mkessler/taskan/internal/model"
)

// RenameBoard changes a board's name
func (s *KanbanService) RenameBoard(boardID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards.FindByID(boardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindBoard, ID: boardID}
	}
	board.SetName(name)
	return nil
}

// RenameColumn changes a column's name
func (s *KanbanService) RenameColumn(columnID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, ok := s.columns.FindByID(columnID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindColumn, ID: columnID}
	}
	column.SetName(name)
	return nil
}

// RenameCard changes a card's title and touches its UpdatedAt
func (s *KanbanService) RenameCard(cardID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards.FindByID(cardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindCard, ID: cardID}
	}
	card.SetTitle(title)
	return nil
}

// SetCardDescription changes a card's description
func (s *KanbanService) SetCardDescription(cardID, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards.FindByID(cardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindCard, ID: cardID}
	}
	card.SetDescription(description)
	return nil
}

// SetCardPriority changes a card's priority. Any integer is accepted.
func (s *KanbanService) SetCardPriority(cardID string, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards.FindByID(cardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindCard, ID: cardID}
	}
	card.SetPriority(priority)
	return nil
}

// FindColumn returns the column with the given id, or nil
func (s *KanbanService) FindColumn(columnID string) *model.Column {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, ok := s.columns.FindByID(columnID)
	if !ok {
		return nil
	}
	return column
}

// FindCard returns the card with the given id, or nil
func (s *KanbanService) FindCard(cardID string) *model.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards.FindByID(cardID)
	if !ok {
		return nil
	}
	return card
}

// CreateTag creates a tag and returns its id. Tags are not sequenced like
// the other entities; they get random ids.
func (s *KanbanService) CreateTag(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tagID := uuid.New().String()
	tag := model.NewTag(tagID, name)
	if err := s.tags.Add(tag); err != nil {
		return "", err
	}
	return tagID, nil
}

// ListTags returns all tags ordered by id
func (s *KanbanService) ListTags() []*model.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags.GetAll()
}

// TagCard attaches a tag to a card. Attaching a tag the card already has
// is a no-op, matching the card's own duplicate policy.
func (s *KanbanService) TagCard(cardID, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards.FindByID(cardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindCard, ID: cardID}
	}
	tag, ok := s.tags.FindByID(tagID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindTag, ID: tagID}
	}
	card.AddTag(tag)
	return nil
}

// UntagCard detaches a tag from a card. Detaching a tag the card does not
// have is a no-op.
func (s *KanbanService) UntagCard(cardID, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards.FindByID(cardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindCard, ID: cardID}
	}
	card.RemoveTagByID(tagID)
	return nil
}

// CreateUser creates a user and returns the generated user id
func (s *KanbanService) CreateUser(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := s.nextUserID()
	user := model.NewUser(userID, name)
	if err := s.users.Add(user); err != nil {
		return "", err
	}
	return userID, nil
}

// ListUsers returns all users ordered by id
func (s *KanbanService) ListUsers() []*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.GetAll()
}
