package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkessler/taskan/internal/model"
	"github.com/mkessler/taskan/internal/service"
)

// SaveSnapshot writes the whole service state, replacing whatever the
// store held before. Everything goes in one transaction so a failed save
// never leaves a half-written snapshot behind.
func (s *Store) SaveSnapshot(svc *service.KanbanService) error {
	boards := svc.ListBoards()
	tags := svc.ListTags()
	counters := svc.CountersSnapshot()

	return s.Transaction(func(tx *sql.Tx) error {
		for _, table := range []string{"card_tags", "activities", "cards", "columns", "tags", "boards", "counters"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		for _, tag := range tags {
			if _, err := tx.Exec(`INSERT INTO tags (id, name) VALUES (?, ?)`, tag.ID(), tag.Name()); err != nil {
				return fmt.Errorf("saving tag %s: %w", tag.ID(), err)
			}
		}

		for _, board := range boards {
			if err := saveBoard(tx, board); err != nil {
				return err
			}
		}

		for kind, next := range map[string]int{
			model.KindBoard:  counters.Board,
			model.KindColumn: counters.Column,
			model.KindCard:   counters.Card,
			model.KindUser:   counters.User,
		} {
			if _, err := tx.Exec(`INSERT INTO counters (kind, next) VALUES (?, ?)`, kind, next); err != nil {
				return fmt.Errorf("saving counter %s: %w", kind, err)
			}
		}
		return nil
	})
}

func saveBoard(tx *sql.Tx, board *model.Board) error {
	if _, err := tx.Exec(`INSERT INTO boards (id, name) VALUES (?, ?)`, board.ID(), board.Name()); err != nil {
		return fmt.Errorf("saving board %s: %w", board.ID(), err)
	}

	for colPos, column := range board.Columns() {
		_, err := tx.Exec(`INSERT INTO columns (id, board_id, name, position) VALUES (?, ?, ?, ?)`,
			column.ID(), board.ID(), column.Name(), colPos)
		if err != nil {
			return fmt.Errorf("saving column %s: %w", column.ID(), err)
		}

		for cardPos, card := range column.Cards() {
			_, err := tx.Exec(`
				INSERT INTO cards (id, column_id, title, description, priority, position, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, card.ID(), column.ID(), card.Title(), card.Description(), card.Priority(), cardPos,
				card.CreatedAt().Format(time.RFC3339Nano), card.UpdatedAt().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("saving card %s: %w", card.ID(), err)
			}

			for tagPos, tag := range card.Tags() {
				_, err := tx.Exec(`INSERT INTO card_tags (card_id, tag_id, position) VALUES (?, ?, ?)`,
					card.ID(), tag.ID(), tagPos)
				if err != nil {
					return fmt.Errorf("saving card tag %s/%s: %w", card.ID(), tag.ID(), err)
				}
			}
		}
	}

	if log := board.ActivityLog(); log != nil {
		for pos, activity := range log.Activities() {
			_, err := tx.Exec(`
				INSERT INTO activities (board_id, activity_id, description, at, position)
				VALUES (?, ?, ?, ?, ?)
			`, board.ID(), activity.ID(), activity.Description(), activity.When().Format(time.RFC3339Nano), pos)
			if err != nil {
				return fmt.Errorf("saving activity %s: %w", activity.ID(), err)
			}
		}
	}
	return nil
}

// LoadSnapshot rebuilds the service state from the store. A store with no
// boards leaves the service empty, which is also what a fresh database
// produces.
func (s *Store) LoadSnapshot(svc *service.KanbanService) error {
	tags, tagByID, err := s.loadTags()
	if err != nil {
		return err
	}

	cardTags, err := s.loadCardTags(tagByID)
	if err != nil {
		return err
	}

	boards, err := s.loadBoards(cardTags)
	if err != nil {
		return err
	}

	counters, err := s.loadCounters()
	if err != nil {
		return err
	}

	return svc.Restore(boards, tags, counters)
}

func (s *Store) loadTags() ([]*model.Tag, map[string]*model.Tag, error) {
	rows, err := s.Query(`SELECT id, name FROM tags`)
	if err != nil {
		return nil, nil, fmt.Errorf("loading tags: %w", err)
	}
	defer rows.Close()

	var tags []*model.Tag
	byID := make(map[string]*model.Tag)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, err
		}
		tag := model.NewTag(id, name)
		tags = append(tags, tag)
		byID[id] = tag
	}
	return tags, byID, rows.Err()
}

// loadCardTags returns the ordered tag list per card id
func (s *Store) loadCardTags(tagByID map[string]*model.Tag) (map[string][]*model.Tag, error) {
	rows, err := s.Query(`SELECT card_id, tag_id FROM card_tags ORDER BY card_id, position`)
	if err != nil {
		return nil, fmt.Errorf("loading card tags: %w", err)
	}
	defer rows.Close()

	byCard := make(map[string][]*model.Tag)
	for rows.Next() {
		var cardID, tagID string
		if err := rows.Scan(&cardID, &tagID); err != nil {
			return nil, err
		}
		if tag, ok := tagByID[tagID]; ok {
			byCard[cardID] = append(byCard[cardID], tag)
		}
	}
	return byCard, rows.Err()
}

func (s *Store) loadBoards(cardTags map[string][]*model.Tag) ([]*model.Board, error) {
	// Collect ids first; nested queries while iterating would contend for
	// the single SQLite connection.
	rows, err := s.Query(`SELECT id, name FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading boards: %w", err)
	}
	var boardIDs, boardNames []string
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return nil, err
		}
		boardIDs = append(boardIDs, id)
		boardNames = append(boardNames, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var boards []*model.Board
	for i, boardID := range boardIDs {
		board := model.NewBoard(boardID, boardNames[i])
		if err := s.loadColumns(board, cardTags); err != nil {
			return nil, err
		}
		if err := s.loadActivityLog(board); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, nil
}

func (s *Store) loadColumns(board *model.Board, cardTags map[string][]*model.Tag) error {
	rows, err := s.Query(`SELECT id, name FROM columns WHERE board_id = ? ORDER BY position`, board.ID())
	if err != nil {
		return fmt.Errorf("loading columns for %s: %w", board.ID(), err)
	}
	var columnIDs, columnNames []string
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		columnIDs = append(columnIDs, id)
		columnNames = append(columnNames, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for i, columnID := range columnIDs {
		column := model.NewColumn(columnID, columnNames[i])
		if err := s.loadCards(column, cardTags); err != nil {
			return err
		}
		board.AddColumn(column)
	}
	return nil
}

func (s *Store) loadCards(column *model.Column, cardTags map[string][]*model.Tag) error {
	rows, err := s.Query(`
		SELECT id, title, description, priority, created_at, updated_at
		FROM cards WHERE column_id = ? ORDER BY position
	`, column.ID())
	if err != nil {
		return fmt.Errorf("loading cards for %s: %w", column.ID(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, title, description, createdRaw, updatedRaw string
		var priority int
		if err := rows.Scan(&id, &title, &description, &priority, &createdRaw, &updatedRaw); err != nil {
			return err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, createdRaw)
		if err != nil {
			return fmt.Errorf("card %s created_at: %w", id, err)
		}
		updatedAt, err := time.Parse(time.RFC3339Nano, updatedRaw)
		if err != nil {
			return fmt.Errorf("card %s updated_at: %w", id, err)
		}
		column.AddCard(model.RestoreCard(id, title, description, priority, createdAt, updatedAt, cardTags[id]))
	}
	return rows.Err()
}

func (s *Store) loadActivityLog(board *model.Board) error {
	rows, err := s.Query(`
		SELECT activity_id, description, at
		FROM activities WHERE board_id = ? ORDER BY position
	`, board.ID())
	if err != nil {
		return fmt.Errorf("loading activities for %s: %w", board.ID(), err)
	}
	defer rows.Close()

	log := model.NewActivityLog()
	for rows.Next() {
		var id, description, atRaw string
		if err := rows.Scan(&id, &description, &atRaw); err != nil {
			return err
		}
		at, err := time.Parse(time.RFC3339Nano, atRaw)
		if err != nil {
			return fmt.Errorf("activity %s timestamp: %w", id, err)
		}
		log.Add(model.NewActivity(id, description, at))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	board.SetActivityLog(log)
	return nil
}

func (s *Store) loadCounters() (service.Counters, error) {
	rows, err := s.Query(`SELECT kind, next FROM counters`)
	if err != nil {
		return service.Counters{}, fmt.Errorf("loading counters: %w", err)
	}
	defer rows.Close()

	var counters service.Counters
	for rows.Next() {
		var kind string
		var next int
		if err := rows.Scan(&kind, &next); err != nil {
			return service.Counters{}, err
		}
		switch kind {
		case model.KindBoard:
			counters.Board = next
		case model.KindColumn:
			counters.Column = next
		case model.KindCard:
			counters.Card = next
		case model.KindUser:
			counters.User = next
		}
	}
	return counters, rows.Err()
}
