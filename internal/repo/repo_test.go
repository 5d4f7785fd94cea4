package repo

import (
	"errors"
	"testing"

	"github.com/mkessler/taskan/internal/model"
)

func TestAddAndFindByID(t *testing.T) {
	r := New[*model.Board](model.KindBoard)

	board := model.NewBoard("board_1", "Project")
	if err := r.Add(board); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, ok := r.FindByID("board_1")
	if !ok || got != board {
		t.Errorf("FindByID = %v, %v; want the added board", got, ok)
	}
	if _, ok := r.FindByID("board_99"); ok {
		t.Error("FindByID found an absent id")
	}
}

func TestAddDuplicateFails(t *testing.T) {
	r := New[*model.Card](model.KindCard)

	first := model.NewCard("card_1", "Original")
	if err := r.Add(first); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := r.Add(model.NewCard("card_1", "Imposter"))
	if !errors.Is(err, model.ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	var dup *model.DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *DuplicateIDError", err)
	}
	if dup.Kind != model.KindCard || dup.ID != "card_1" {
		t.Errorf("error fields = %s/%s, want card/card_1", dup.Kind, dup.ID)
	}

	// The first entity is untouched
	got, _ := r.FindByID("card_1")
	if got.Title() != "Original" {
		t.Error("duplicate Add replaced the stored entity")
	}
	if r.Size() != 1 {
		t.Errorf("size = %d, want 1", r.Size())
	}
}

func TestRemove(t *testing.T) {
	r := New[*model.Tag](model.KindTag)
	if err := r.Add(model.NewTag("t1", "urgent")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := r.Remove("t1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if r.Exists("t1") {
		t.Error("entity still present after Remove")
	}

	err := r.Remove("t1")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetAllSortedByID(t *testing.T) {
	r := New[*model.Column](model.KindColumn)
	for _, id := range []string{"column_3", "column_1", "column_2"} {
		if err := r.Add(model.NewColumn(id, id)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// Two reads return the same order regardless of insertion order
	for i := 0; i < 2; i++ {
		all := r.GetAll()
		if len(all) != 3 {
			t.Fatalf("got %d entities, want 3", len(all))
		}
		want := []string{"column_1", "column_2", "column_3"}
		for j, col := range all {
			if col.ID() != want[j] {
				t.Errorf("GetAll()[%d] = %s, want %s", j, col.ID(), want[j])
			}
		}
	}
}

func TestClear(t *testing.T) {
	r := New[*model.User](model.KindUser)
	if err := r.Add(model.NewUser("user_1", "Ada")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	r.Clear()
	if r.Size() != 0 {
		t.Errorf("size = %d after Clear, want 0", r.Size())
	}
	if err := r.Add(model.NewUser("user_1", "Ada")); err != nil {
		t.Errorf("Add after Clear failed: %v", err)
	}
}
