package app

import (
	"path/filepath"
	"testing"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		DataDir: dir,
		DBPath:  filepath.Join(dir, "taskan.db"),
	}
}

func TestNewInMemory(t *testing.T) {
	application, err := New(&Config{InMemory: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer application.Close()

	if application.Store != nil {
		t.Error("in-memory app has a snapshot store")
	}
	if err := application.Save(); err != nil {
		t.Errorf("in-memory Save should be a no-op, got %v", err)
	}
}

func TestStatePersistsAcrossInstances(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	boardID, err := first.Service.CreateBoard("Durable")
	if err != nil {
		t.Fatalf("CreateBoard failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	board := second.Service.FindBoard(boardID)
	if board == nil || board.Name() != "Durable" {
		t.Errorf("board not restored on reopen: %v", board)
	}
}

func TestSecondInstanceRejected(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer first.Close()

	if _, err := New(cfg); err == nil {
		t.Fatal("second instance on the same data dir should fail")
	}
}
