package model

import "testing"

func TestColumnAddCardIdempotent(t *testing.T) {
	col := NewColumn("column_1", "To Do")
	card := NewCard("card_1", "Task")

	col.AddCard(card)
	col.AddCard(NewCard("card_1", "Task dupe"))

	if col.Size() != 1 {
		t.Fatalf("got %d cards, want 1", col.Size())
	}
	if col.Cards()[0].Title() != "Task" {
		t.Error("duplicate AddCard replaced the original card")
	}
}

func TestColumnInsertCardAtClamps(t *testing.T) {
	col := NewColumn("column_1", "To Do")
	col.AddCard(NewCard("card_1", "First"))
	col.AddCard(NewCard("card_2", "Second"))

	// Negative index clamps to the front
	col.InsertCardAt(-5, NewCard("card_3", "Front"))
	if col.Cards()[0].ID() != "card_3" {
		t.Errorf("front card = %s, want card_3", col.Cards()[0].ID())
	}

	// Past-the-end index clamps to the back
	col.InsertCardAt(99, NewCard("card_4", "Back"))
	if col.Cards()[col.Size()-1].ID() != "card_4" {
		t.Errorf("back card = %s, want card_4", col.Cards()[col.Size()-1].ID())
	}

	// Middle insertion lands at the requested slot
	col.InsertCardAt(2, NewCard("card_5", "Middle"))
	if col.Cards()[2].ID() != "card_5" {
		t.Errorf("middle card = %s, want card_5", col.Cards()[2].ID())
	}
	if col.Size() != 5 {
		t.Errorf("size = %d, want 5", col.Size())
	}
}

func TestColumnRemoveCardByID(t *testing.T) {
	col := NewColumn("column_1", "To Do")
	col.AddCard(NewCard("card_1", "First"))
	col.AddCard(NewCard("card_2", "Second"))
	col.AddCard(NewCard("card_3", "Third"))

	removed := col.RemoveCardByID("card_2")
	if removed == nil || removed.ID() != "card_2" {
		t.Fatalf("RemoveCardByID returned %v", removed)
	}
	if col.Size() != 2 {
		t.Errorf("size = %d, want 2", col.Size())
	}
	// Remaining order is preserved
	if col.Cards()[0].ID() != "card_1" || col.Cards()[1].ID() != "card_3" {
		t.Error("removal disturbed the order of remaining cards")
	}

	if col.RemoveCardByID("card_99") != nil {
		t.Error("RemoveCardByID returned a card for an absent id")
	}
}

func TestColumnFindCard(t *testing.T) {
	col := NewColumn("column_1", "To Do")
	card := NewCard("card_1", "Task")
	col.AddCard(card)

	if got := col.FindCard("card_1"); got != card {
		t.Errorf("FindCard returned %v, want the added card", got)
	}
	if col.FindCard("card_99") != nil {
		t.Error("FindCard returned a card for an absent id")
	}
	if !col.HasCard("card_1") || col.HasCard("card_99") {
		t.Error("HasCard answers wrong")
	}
}

func TestColumnClear(t *testing.T) {
	col := NewColumn("column_1", "To Do")
	col.AddCard(NewCard("card_1", "Task"))

	col.Clear()
	if !col.Empty() {
		t.Error("column not empty after Clear")
	}
}
