package db

import (
	"path/filepath"
	"testing"

	"github.com/mkessler/taskan/internal/service"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedService builds a service with one board, two columns, a tagged card
// and one move in the activity log.
func seedService(t *testing.T) (*service.KanbanService, string, string, string, string) {
	t.Helper()
	svc := service.New()

	boardID, err := svc.CreateBoard("Roadmap")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	todo, _ := svc.AddColumn(boardID, "To Do")
	doing, _ := svc.AddColumn(boardID, "Doing")

	cardID, err := svc.AddCard(boardID, todo, "Ship it")
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	if err := svc.SetCardDescription(cardID, "before the deadline"); err != nil {
		t.Fatalf("SetCardDescription failed: %v", err)
	}
	if err := svc.SetCardPriority(cardID, 3); err != nil {
		t.Fatalf("SetCardPriority failed: %v", err)
	}

	tagID, err := svc.CreateTag("urgent")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := svc.TagCard(cardID, tagID); err != nil {
		t.Fatalf("TagCard failed: %v", err)
	}

	if err := svc.MoveCard(boardID, cardID, todo, doing); err != nil {
		t.Fatalf("MoveCard failed: %v", err)
	}
	return svc, boardID, doing, cardID, tagID
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	src, boardID, doing, cardID, tagID := seedService(t)

	original := src.FindCard(cardID)

	if err := store.SaveSnapshot(src); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	dst := service.New()
	if err := store.LoadSnapshot(dst); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	board := dst.FindBoard(boardID)
	if board == nil {
		t.Fatal("board missing after load")
	}
	if board.Name() != "Roadmap" {
		t.Errorf("board name = %q", board.Name())
	}

	columns, err := dst.ListColumns(boardID)
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	if len(columns) != 2 || columns[0].Name() != "To Do" || columns[1].Name() != "Doing" {
		t.Errorf("columns out of order after load: %v", columns)
	}

	cards, err := dst.ListCards(doing)
	if err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards in destination column, want 1", len(cards))
	}
	card := cards[0]
	if card.ID() != cardID || card.Title() != "Ship it" {
		t.Errorf("card = %s %q", card.ID(), card.Title())
	}
	if card.Description() != "before the deadline" {
		t.Errorf("description = %q", card.Description())
	}
	if card.Priority() != 3 {
		t.Errorf("priority = %d, want 3", card.Priority())
	}
	if !card.HasTag(tagID) {
		t.Error("card lost its tag")
	}
	if !card.CreatedAt().Equal(original.CreatedAt()) {
		t.Errorf("CreatedAt = %v, want %v", card.CreatedAt(), original.CreatedAt())
	}
	if !card.UpdatedAt().Equal(original.UpdatedAt()) {
		t.Errorf("UpdatedAt = %v, want %v", card.UpdatedAt(), original.UpdatedAt())
	}

	activities, err := dst.BoardActivities(boardID)
	if err != nil {
		t.Fatalf("BoardActivities failed: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("got %d activities, want 1", len(activities))
	}
	if activities[0].ID() != cardID+"_move" {
		t.Errorf("activity id = %s", activities[0].ID())
	}

	// Id generation resumes past the loaded entities
	nextBoard, err := dst.CreateBoard("Next")
	if err != nil {
		t.Fatalf("CreateBoard after load failed: %v", err)
	}
	if nextBoard != "board_2" {
		t.Errorf("next board id = %s, want board_2", nextBoard)
	}
}

func TestLoadSnapshotEmptyDatabase(t *testing.T) {
	store := openTestStore(t)

	svc := service.New()
	if err := store.LoadSnapshot(svc); err != nil {
		t.Fatalf("LoadSnapshot on empty store failed: %v", err)
	}
	if len(svc.ListBoards()) != 0 {
		t.Error("empty store produced boards")
	}

	// Counters start from scratch
	boardID, err := svc.CreateBoard("First")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if boardID != "board_1" {
		t.Errorf("board id = %s, want board_1", boardID)
	}
}

func TestSaveSnapshotOverwritesPrevious(t *testing.T) {
	store := openTestStore(t)

	first := service.New()
	if _, err := first.CreateBoard("Old"); err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if err := store.SaveSnapshot(first); err != nil {
		t.Fatalf("first SaveSnapshot failed: %v", err)
	}

	second := service.New()
	if _, err := second.CreateBoard("New"); err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if err := store.SaveSnapshot(second); err != nil {
		t.Fatalf("second SaveSnapshot failed: %v", err)
	}

	loaded := service.New()
	if err := store.LoadSnapshot(loaded); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	boards := loaded.ListBoards()
	if len(boards) != 1 || boards[0].Name() != "New" {
		t.Errorf("boards after overwrite = %v", boards)
	}
}

// TestNestedLoadNoDeadlock guards the snapshot loader against the SQLite
// single-connection deadlock: with SetMaxOpenConns(1), running a nested
// query while still iterating another result set hangs forever. The
// loader collects ids first, so a snapshot with many boards and columns
// must load fine.
func TestNestedLoadNoDeadlock(t *testing.T) {
	store := openTestStore(t)

	src := service.New()
	for b := 0; b < 3; b++ {
		boardID, err := src.CreateBoard("Board")
		if err != nil {
			t.Fatalf("CreateBoard failed: %v", err)
		}
		for c := 0; c < 4; c++ {
			columnID, err := src.AddColumn(boardID, "Column")
			if err != nil {
				t.Fatalf("AddColumn failed: %v", err)
			}
			for k := 0; k < 5; k++ {
				if _, err := src.AddCard(boardID, columnID, "Card"); err != nil {
					t.Fatalf("AddCard failed: %v", err)
				}
			}
		}
	}

	if err := store.SaveSnapshot(src); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	dst := service.New()
	if err := store.LoadSnapshot(dst); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(dst.ListBoards()) != 3 {
		t.Errorf("got %d boards, want 3", len(dst.ListBoards()))
	}
}
