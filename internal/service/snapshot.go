package service

import (
	"github.com/mkessler/taskan/internal/model"
)

// CountersSnapshot returns the current id sequence state, for the
// snapshot store.
func (s *KanbanService) CountersSnapshot() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Restore replaces the whole service state with the given boards and
// tags, typically rebuilt from a stored snapshot. Boards arrive fully
// assembled; their columns and cards are walked and re-indexed into the
// flat repositories. Counters are restored so generated ids never collide
// with loaded ones.
func (s *KanbanService) Restore(boards []*model.Board, tags []*model.Tag, counters Counters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards.Clear()
	s.columns.Clear()
	s.cards.Clear()
	s.tags.Clear()
	s.users.Clear()

	for _, tag := range tags {
		if err := s.tags.Add(tag); err != nil {
			return err
		}
	}
	for _, board := range boards {
		if err := s.boards.Add(board); err != nil {
			return err
		}
		for _, column := range board.Columns() {
			if err := s.columns.Add(column); err != nil {
				return err
			}
			for _, card := range column.Cards() {
				if err := s.cards.Add(card); err != nil {
					return err
				}
			}
		}
	}

	s.counters = counters
	return nil
}
