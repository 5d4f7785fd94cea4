package service

import (
	"errors"
	"testing"

	"github.com/mkessler/taskan/internal/model"
)

func TestCreateBoardGeneratesSequentialIDs(t *testing.T) {
	svc := New()

	first, err := svc.CreateBoard("First")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	second, err := svc.CreateBoard("Second")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}

	if first != "board_1" || second != "board_2" {
		t.Errorf("ids = %s, %s; want board_1, board_2", first, second)
	}

	board := svc.FindBoard(first)
	if board == nil {
		t.Fatal("created board not findable")
	}
	if board.ActivityLog() == nil {
		t.Error("created board has no activity log attached")
	}
}

func TestAddColumnRequiresBoard(t *testing.T) {
	svc := New()

	_, err := svc.AddColumn("board_999", "To Do")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	boardID, _ := svc.CreateBoard("Project")
	columnID, err := svc.AddColumn(boardID, "To Do")
	if err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if columnID != "column_1" {
		t.Errorf("column id = %s, want column_1", columnID)
	}

	columns, err := svc.ListColumns(boardID)
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	if len(columns) != 1 || columns[0].ID() != columnID {
		t.Errorf("board columns = %v, want the one added", columns)
	}
	if svc.FindColumn(columnID) == nil {
		t.Error("column not findable by id")
	}
}

func TestAddCardMissingColumnLeavesNoTrace(t *testing.T) {
	svc := New()
	boardID, _ := svc.CreateBoard("Project")

	_, err := svc.AddCard(boardID, "column_999", "Orphan")
	var nf *model.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if nf.Kind != model.KindColumn {
		t.Errorf("kind = %s, want column", nf.Kind)
	}

	// No card exists and the id sequence did not advance
	columnID, _ := svc.AddColumn(boardID, "To Do")
	cardID, err := svc.AddCard(boardID, columnID, "Real")
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	if cardID != "card_1" {
		t.Errorf("card id = %s, want card_1 (failed add must not burn an id)", cardID)
	}
}

func TestAddCardRequiresBoard(t *testing.T) {
	svc := New()
	boardID, _ := svc.CreateBoard("Project")
	columnID, _ := svc.AddColumn(boardID, "To Do")

	_, err := svc.AddCard("board_999", columnID, "Task")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMoveCardEndToEnd(t *testing.T) {
	svc := New()
	boardID, _ := svc.CreateBoard("P")
	todo, _ := svc.AddColumn(boardID, "Todo")
	doing, _ := svc.AddColumn(boardID, "Doing")
	cardID, _ := svc.AddCard(boardID, todo, "Write spec")

	if err := svc.MoveCard(boardID, cardID, todo, doing); err != nil {
		t.Fatalf("MoveCard failed: %v", err)
	}

	todoCards, _ := svc.ListCards(todo)
	doingCards, _ := svc.ListCards(doing)
	if len(todoCards) != 0 {
		t.Errorf("source still has %d cards", len(todoCards))
	}
	if len(doingCards) != 1 || doingCards[0].ID() != cardID {
		t.Errorf("destination cards = %v, want the moved card", doingCards)
	}

	activities, err := svc.BoardActivities(boardID)
	if err != nil {
		t.Fatalf("BoardActivities failed: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("got %d activities, want 1", len(activities))
	}
	if activities[0].ID() != cardID+"_move" {
		t.Errorf("activity id = %s, want %s_move", activities[0].ID(), cardID)
	}
	want := "Card 'Write spec' moved from 'Todo' to 'Doing'"
	if activities[0].Description() != want {
		t.Errorf("description = %q, want %q", activities[0].Description(), want)
	}
}

func TestMoveCardValidation(t *testing.T) {
	svc := New()
	boardID, _ := svc.CreateBoard("Project")
	todo, _ := svc.AddColumn(boardID, "To Do")
	doing, _ := svc.AddColumn(boardID, "Doing")
	cardID, _ := svc.AddCard(boardID, todo, "Task")

	cases := []struct {
		name string
		err  error
	}{
		{"missing board", svc.MoveCard("board_999", cardID, todo, doing)},
		{"missing source", svc.MoveCard(boardID, cardID, "column_999", doing)},
		{"missing destination", svc.MoveCard(boardID, cardID, todo, "column_999")},
		{"missing card", svc.MoveCard(boardID, "card_999", todo, doing)},
	}
	for _, c := range cases {
		if !errors.Is(c.err, model.ErrNotFound) {
			t.Errorf("%s: err = %v, want ErrNotFound", c.name, c.err)
		}
	}

	// The card never left its column through all the failures
	cards, _ := svc.ListCards(todo)
	if len(cards) != 1 || cards[0].ID() != cardID {
		t.Error("failed moves disturbed the card")
	}
}

func TestListBoardsSorted(t *testing.T) {
	svc := New()
	for _, name := range []string{"C", "A", "B"} {
		if _, err := svc.CreateBoard(name); err != nil {
			t.Fatalf("CreateBoard failed: %v", err)
		}
	}

	boards := svc.ListBoards()
	if len(boards) != 3 {
		t.Fatalf("got %d boards, want 3", len(boards))
	}
	for i, want := range []string{"board_1", "board_2", "board_3"} {
		if boards[i].ID() != want {
			t.Errorf("boards[%d] = %s, want %s", i, boards[i].ID(), want)
		}
	}
}

func TestListCardsMissingColumn(t *testing.T) {
	svc := New()
	if _, err := svc.ListCards("column_999"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateSampleData(t *testing.T) {
	svc := New()
	if err := svc.CreateSampleData(); err != nil {
		t.Fatalf("CreateSampleData failed: %v", err)
	}

	boards := svc.ListBoards()
	if len(boards) != 1 {
		t.Fatalf("got %d boards, want 1", len(boards))
	}
	if boards[0].Name() != "Sample Project" {
		t.Errorf("board name = %q", boards[0].Name())
	}

	columns, err := svc.ListColumns(boards[0].ID())
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(columns))
	}

	total := 0
	for _, col := range columns {
		cards, err := svc.ListCards(col.ID())
		if err != nil {
			t.Fatalf("ListCards failed: %v", err)
		}
		total += len(cards)
	}
	if total != 4 {
		t.Errorf("got %d cards across columns, want 4", total)
	}
}

func TestRenameOperations(t *testing.T) {
	svc := New()
	boardID, _ := svc.CreateBoard("Old Board")
	columnID, _ := svc.AddColumn(boardID, "Old Column")
	cardID, _ := svc.AddCard(boardID, columnID, "Old Card")

	if err := svc.RenameBoard(boardID, "New Board"); err != nil {
		t.Fatalf("RenameBoard failed: %v", err)
	}
	if err := svc.RenameColumn(columnID, "New Column"); err != nil {
		t.Fatalf("RenameColumn failed: %v", err)
	}
	if err := svc.RenameCard(cardID, "New Card"); err != nil {
		t.Fatalf("RenameCard failed: %v", err)
	}

	if svc.FindBoard(boardID).Name() != "New Board" {
		t.Error("board not renamed")
	}
	if svc.FindColumn(columnID).Name() != "New Column" {
		t.Error("column not renamed")
	}
	if svc.FindCard(cardID).Title() != "New Card" {
		t.Error("card not renamed")
	}

	if err := svc.RenameCard("card_999", "X"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTagging(t *testing.T) {
	svc := New()
	boardID, _ := svc.CreateBoard("Project")
	columnID, _ := svc.AddColumn(boardID, "To Do")
	cardID, _ := svc.AddCard(boardID, columnID, "Task")

	tagID, err := svc.CreateTag("urgent")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if tagID == "" {
		t.Fatal("CreateTag returned an empty id")
	}

	if err := svc.TagCard(cardID, tagID); err != nil {
		t.Fatalf("TagCard failed: %v", err)
	}
	if !svc.FindCard(cardID).HasTag(tagID) {
		t.Error("card not tagged")
	}

	// Tagging twice is a no-op
	if err := svc.TagCard(cardID, tagID); err != nil {
		t.Fatalf("second TagCard failed: %v", err)
	}
	if len(svc.FindCard(cardID).Tags()) != 1 {
		t.Error("duplicate tag attached")
	}

	if err := svc.UntagCard(cardID, tagID); err != nil {
		t.Fatalf("UntagCard failed: %v", err)
	}
	if svc.FindCard(cardID).HasTag(tagID) {
		t.Error("card still tagged after UntagCard")
	}
	// Untagging an absent tag is a no-op
	if err := svc.UntagCard(cardID, tagID); err != nil {
		t.Errorf("UntagCard of absent tag failed: %v", err)
	}

	if err := svc.TagCard(cardID, "tag_999"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUser(t *testing.T) {
	svc := New()
	userID, err := svc.CreateUser("Ada")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if userID != "user_1" {
		t.Errorf("user id = %s, want user_1", userID)
	}
	users := svc.ListUsers()
	if len(users) != 1 || users[0].Name() != "Ada" {
		t.Errorf("users = %v", users)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	src := New()
	if err := src.CreateSampleData(); err != nil {
		t.Fatalf("CreateSampleData failed: %v", err)
	}
	boardID := src.ListBoards()[0].ID()
	columns, _ := src.ListColumns(boardID)
	cardID := mustFirstCard(t, src, columns)
	if err := src.MoveCard(boardID, cardID, columns[0].ID(), columns[1].ID()); err != nil {
		t.Fatalf("MoveCard failed: %v", err)
	}

	dst := New()
	if err := dst.Restore(src.ListBoards(), src.ListTags(), src.CountersSnapshot()); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// Entities are findable through the flat repositories again
	if dst.FindBoard(boardID) == nil {
		t.Error("board not indexed after restore")
	}
	if dst.FindCard(cardID) == nil {
		t.Error("card not indexed after restore")
	}
	activities, err := dst.BoardActivities(boardID)
	if err != nil || len(activities) != 1 {
		t.Errorf("activities after restore = %v, %v", activities, err)
	}

	// Id sequences continue where the source left off
	newBoard, _ := dst.CreateBoard("Next")
	if newBoard != "board_2" {
		t.Errorf("next board id = %s, want board_2", newBoard)
	}
}

func mustFirstCard(t *testing.T, svc *KanbanService, columns []*model.Column) string {
	t.Helper()
	for _, col := range columns {
		cards, err := svc.ListCards(col.ID())
		if err != nil {
			t.Fatalf("ListCards failed: %v", err)
		}
		if len(cards) > 0 {
			return cards[0].ID()
		}
	}
	t.Fatal("no cards found")
	return ""
}
