package model

import (
	"fmt"
	"time"
)

// Board is the top-level container: an ordered sequence of columns plus
// an optional activity log. MoveCard is the only operation that touches
// more than one column at a time.
type Board struct {
	id          string
	name        string
	columns     []*Column
	activityLog *ActivityLog
}

// NewBoard creates a board with no columns and no activity log
func NewBoard(id, name string) *Board {
	return &Board{id: id, name: name}
}

// ID returns the board's immutable id
func (b *Board) ID() string {
	return b.id
}

// Name returns the board's name
func (b *Board) Name() string {
	return b.name
}

// SetName renames the board
func (b *Board) SetName(name string) {
	b.name = name
}

// AddColumn appends the column at the end. If a column with the same id
// is already on the board the call is a silent no-op.
func (b *Board) AddColumn(column *Column) {
	if b.HasColumn(column.ID()) {
		return
	}
	b.columns = append(b.columns, column)
}

// RemoveColumnByID removes and returns the column with the given id, or
// nil if no such column is on the board.
func (b *Board) RemoveColumnByID(columnID string) *Column {
	for i, column := range b.columns {
		if column.ID() == columnID {
			b.columns = append(b.columns[:i], b.columns[i+1:]...)
			return column
		}
	}
	return nil
}

// FindColumn returns the column with the given id, or nil
func (b *Board) FindColumn(columnID string) *Column {
	for _, column := range b.columns {
		if column.ID() == columnID {
			return column
		}
	}
	return nil
}

// HasColumn reports whether a column with the given id is on the board
func (b *Board) HasColumn(columnID string) bool {
	return b.FindColumn(columnID) != nil
}

// Columns returns the columns in board order. Callers must not modify
// the returned slice.
func (b *Board) Columns() []*Column {
	return b.columns
}

// ColumnCount returns the number of columns on the board
func (b *Board) ColumnCount() int {
	return len(b.columns)
}

// SetColumns replaces the whole column sequence, used for reordering
func (b *Board) SetColumns(columns []*Column) {
	b.columns = columns
}

// MoveCard moves a card from one column of this board to another. The
// card is removed from the source column and appended to the destination,
// and the move is recorded in the activity log when one is attached.
//
// Any returned error means no mutation occurred: both column lookups and
// the removal happen before anything is written, and the append after the
// removal cannot fail.
func (b *Board) MoveCard(cardID, fromColumnID, toColumnID string) error {
	fromColumn := b.FindColumn(fromColumnID)
	if fromColumn == nil {
		return fmt.Errorf("source %w", &NotFoundError{Kind: KindColumn, ID: fromColumnID})
	}
	toColumn := b.FindColumn(toColumnID)
	if toColumn == nil {
		return fmt.Errorf("destination %w", &NotFoundError{Kind: KindColumn, ID: toColumnID})
	}

	card := fromColumn.RemoveCardByID(cardID)
	if card == nil {
		return fmt.Errorf("in source column %s: %w", fromColumnID, &NotFoundError{Kind: KindCard, ID: cardID})
	}

	// AddCard rather than a blind append: a card id can never appear twice
	// in the destination, even if a caller bypasses the service layer.
	toColumn.AddCard(card)

	if b.activityLog != nil {
		description := fmt.Sprintf("Card '%s' moved from '%s' to '%s'",
			card.Title(), fromColumn.Name(), toColumn.Name())
		b.activityLog.Add(NewActivity(cardID+"_move", description, time.Now()))
	}
	return nil
}

// SetActivityLog associates an activity log with the board. Passing nil
// detaches the current one.
func (b *Board) SetActivityLog(log *ActivityLog) {
	b.activityLog = log
}

// ActivityLog returns the associated log, or nil if none is attached
func (b *Board) ActivityLog() *ActivityLog {
	return b.activityLog
}

// Clear drops all columns and detaches the activity log
func (b *Board) Clear() {
	b.columns = nil
	b.activityLog = nil
}
