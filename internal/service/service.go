// Package service holds the Kanban façade: the single entry point both
// front ends use to create, query and mutate boards.
package service

import (
	"fmt"
	"sync"

	"github.com/mkessler/taskan/internal/model"
	"github.com/mkessler/taskan/internal/repo"
)

// Counters are the monotonic sequences behind generated entity ids. Ids
// are never reused, even after a removal.
type Counters struct {
	Board  int
	Column int
	Card   int
	User   int
}

// KanbanService coordinates the domain objects and the flat per-type
// repositories. Columns and cards live in two places at once: inside
// their owning board/column and in the flat repositories used for direct
// id lookup. Every mutating method here updates both, and nothing else is
// allowed to write, which is what keeps the two views consistent.
//
// All methods are safe for concurrent use; a single mutex serializes the
// whole façade because the dual-store design has no atomicity of its own.
type KanbanService struct {
	mu sync.Mutex

	boards  *repo.Repository[*model.Board]
	columns *repo.Repository[*model.Column]
	cards   *repo.Repository[*model.Card]
	tags    *repo.Repository[*model.Tag]
	users   *repo.Repository[*model.User]

	counters Counters
}

// New creates an empty service
func New() *KanbanService {
	return &KanbanService{
		boards:  repo.New[*model.Board](model.KindBoard),
		columns: repo.New[*model.Column](model.KindColumn),
		cards:   repo.New[*model.Card](model.KindCard),
		tags:    repo.New[*model.Tag](model.KindTag),
		users:   repo.New[*model.User](model.KindUser),
	}
}

func (s *KanbanService) nextBoardID() string {
	s.counters.Board++
	return fmt.Sprintf("board_%d", s.counters.Board)
}

func (s *KanbanService) nextColumnID() string {
	s.counters.Column++
	return fmt.Sprintf("column_%d", s.counters.Column)
}

func (s *KanbanService) nextCardID() string {
	s.counters.Card++
	return fmt.Sprintf("card_%d", s.counters.Card)
}

func (s *KanbanService) nextUserID() string {
	s.counters.User++
	return fmt.Sprintf("user_%d", s.counters.User)
}

// CreateSampleData seeds one demo board with the three classic columns
// and a few cards spread across them.
func (s *KanbanService) CreateSampleData() error {
	boardID, err := s.CreateBoard("Sample Project")
	if err != nil {
		return err
	}

	todoID, err := s.AddColumn(boardID, "To Do")
	if err != nil {
		return err
	}
	doingID, err := s.AddColumn(boardID, "Doing")
	if err != nil {
		return err
	}
	doneID, err := s.AddColumn(boardID, "Done")
	if err != nil {
		return err
	}

	for _, seed := range []struct {
		columnID string
		title    string
	}{
		{todoID, "Set up the development environment"},
		{todoID, "Sketch the domain entities"},
		{doingID, "Build the board service"},
		{doneID, "Agree on the project layout"},
	} {
		if _, err := s.AddCard(boardID, seed.columnID, seed.title); err != nil {
			return err
		}
	}
	return nil
}

// CreateBoard creates a board with a fresh empty activity log attached
// and returns the generated board id.
func (s *KanbanService) CreateBoard(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boardID := s.nextBoardID()
	board := model.NewBoard(boardID, name)
	board.SetActivityLog(model.NewActivityLog())

	if err := s.boards.Add(board); err != nil {
		return "", err
	}
	return boardID, nil
}

// AddColumn creates a column on the given board and returns the generated
// column id. Fails when the board does not exist.
func (s *KanbanService) AddColumn(boardID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards.FindByID(boardID)
	if !ok {
		return "", &model.NotFoundError{Kind: model.KindBoard, ID: boardID}
	}

	columnID := s.nextColumnID()
	column := model.NewColumn(columnID, name)

	if err := s.columns.Add(column); err != nil {
		return "", err
	}
	board.AddColumn(column)
	return columnID, nil
}

// AddCard creates a card in the given column and returns the generated
// card id. Fails when the board or the column does not exist. The column
// check goes through the flat column repository, so the boardID argument
// is validated but not matched against the column's owning board.
func (s *KanbanService) AddCard(boardID, columnID, title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.boards.Exists(boardID) {
		return "", &model.NotFoundError{Kind: model.KindBoard, ID: boardID}
	}
	column, ok := s.columns.FindByID(columnID)
	if !ok {
		return "", &model.NotFoundError{Kind: model.KindColumn, ID: columnID}
	}

	cardID := s.nextCardID()
	card := model.NewCard(cardID, title)

	if err := s.cards.Add(card); err != nil {
		return "", err
	}
	column.AddCard(card)
	return cardID, nil
}

// MoveCard moves a card between two columns of the same board. Board and
// column existence are checked against the flat repositories first;
// board scoping of the two columns is then enforced by the board itself,
// which resolves them from its own column list.
func (s *KanbanService) MoveCard(boardID, cardID, fromColumnID, toColumnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards.FindByID(boardID)
	if !ok {
		return &model.NotFoundError{Kind: model.KindBoard, ID: boardID}
	}
	if !s.columns.Exists(fromColumnID) {
		return &model.NotFoundError{Kind: model.KindColumn, ID: fromColumnID}
	}
	if !s.columns.Exists(toColumnID) {
		return &model.NotFoundError{Kind: model.KindColumn, ID: toColumnID}
	}

	return board.MoveCard(cardID, fromColumnID, toColumnID)
}

// ListBoards returns all boards ordered by id
func (s *KanbanService) ListBoards() []*model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boards.GetAll()
}

// FindBoard returns the board with the given id, or nil
func (s *KanbanService) FindBoard(boardID string) *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards.FindByID(boardID)
	if !ok {
		return nil
	}
	return board
}

// ListColumns returns the board's columns in board order. Fails when the
// board does not exist; a board without columns yields an empty slice.
func (s *KanbanService) ListColumns(boardID string) ([]*model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards.FindByID(boardID)
	if !ok {
		return nil, &model.NotFoundError{Kind: model.KindBoard, ID: boardID}
	}
	return board.Columns(), nil
}

// ListCards returns the column's cards in column order. Fails when the
// column does not exist; an empty column yields an empty slice.
func (s *KanbanService) ListCards(columnID string) ([]*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, ok := s.columns.FindByID(columnID)
	if !ok {
		return nil, &model.NotFoundError{Kind: model.KindColumn, ID: columnID}
	}
	return column.Cards(), nil
}

// BoardActivities returns the board's activity entries in insertion
// order, empty when no log is attached.
func (s *KanbanService) BoardActivities(boardID string) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards.FindByID(boardID)
	if !ok {
		return nil, &model.NotFoundError{Kind: model.KindBoard, ID: boardID}
	}
	log := board.ActivityLog()
	if log == nil {
		return nil, nil
	}
	return log.Activities(), nil
}
