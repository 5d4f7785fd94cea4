package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mkessler/taskan/internal/model"
)

func TestDisplayBoards(t *testing.T) {
	var buf bytes.Buffer
	v := NewConsoleView(&buf)

	board := model.NewBoard("board_1", "Roadmap")
	board.AddColumn(model.NewColumn("column_1", "To Do"))
	v.DisplayBoards([]*model.Board{board})

	out := buf.String()
	for _, want := range []string{"ID", "NAME", "COLUMNS", "board_1", "Roadmap", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in table output:\n%s", want, out)
		}
	}
}

func TestDisplayBoardsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleView(&buf).DisplayBoards(nil)
	if got := buf.String(); got != "no boards\n" {
		t.Errorf("empty output = %q, want %q", got, "no boards\n")
	}
}

func TestDisplayCards(t *testing.T) {
	var buf bytes.Buffer
	v := NewConsoleView(&buf)

	card := model.NewCard("card_1", "Ship it")
	card.SetPriority(3)
	card.AddTag(model.NewTag("t1", "urgent"))
	v.DisplayCards([]*model.Card{card})

	out := buf.String()
	for _, want := range []string{"card_1", "Ship it", "3", "urgent"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in table output:\n%s", want, out)
		}
	}
}

func TestDisplayActivities(t *testing.T) {
	var buf bytes.Buffer
	v := NewConsoleView(&buf)

	when := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	v.DisplayActivities([]model.Activity{
		model.NewActivity("a1", "Card 'X' moved from 'A' to 'B'", when),
	})

	out := buf.String()
	if !strings.Contains(out, "2024-05-01 09:30:00") {
		t.Errorf("missing timestamp in output:\n%s", out)
	}
	if !strings.Contains(out, "Card 'X' moved from 'A' to 'B'") {
		t.Errorf("missing description in output:\n%s", out)
	}

	buf.Reset()
	v.DisplayActivities(nil)
	if buf.String() != "no activity\n" {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestShowError(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleView(&buf).ShowError("boom")
	if buf.String() != "error: boom\n" {
		t.Errorf("error output = %q", buf.String())
	}
}
