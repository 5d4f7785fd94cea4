// Package view defines the presentation contract the core exposes to its
// front ends, plus the console implementation. The core never formats
// output itself; everything user-facing goes through a View.
package view

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mkessler/taskan/internal/model"
)

// View is what a front end must implement to present core state
type View interface {
	ShowMessage(text string)
	ShowError(text string)
	DisplayBoards(boards []*model.Board)
	DisplayColumns(columns []*model.Column)
	DisplayCards(cards []*model.Card)
	DisplayActivities(activities []model.Activity)
}

// ConsoleView renders to a writer as plain text and tables. It is the
// View used by the line-oriented console front end.
type ConsoleView struct {
	out io.Writer
}

// NewConsoleView creates a console view writing to out
func NewConsoleView(out io.Writer) *ConsoleView {
	return &ConsoleView{out: out}
}

// ShowMessage prints an informational line
func (v *ConsoleView) ShowMessage(text string) {
	fmt.Fprintln(v.out, text)
}

// ShowError prints an error line
func (v *ConsoleView) ShowError(text string) {
	fmt.Fprintln(v.out, "error:", text)
}

// DisplayBoards renders a table of boards with their column counts
func (v *ConsoleView) DisplayBoards(boards []*model.Board) {
	if len(boards) == 0 {
		fmt.Fprintln(v.out, "no boards")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(v.out)
	tw.AppendHeader(table.Row{"ID", "Name", "Columns"})
	for _, b := range boards {
		tw.AppendRow(table.Row{b.ID(), b.Name(), b.ColumnCount()})
	}
	tw.Render()
}

// DisplayColumns renders a table of columns with their card counts
func (v *ConsoleView) DisplayColumns(columns []*model.Column) {
	if len(columns) == 0 {
		fmt.Fprintln(v.out, "no columns")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(v.out)
	tw.AppendHeader(table.Row{"ID", "Name", "Cards"})
	for _, c := range columns {
		tw.AppendRow(table.Row{c.ID(), c.Name(), c.Size()})
	}
	tw.Render()
}

// DisplayCards renders a table of cards
func (v *ConsoleView) DisplayCards(cards []*model.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(v.out, "no cards")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(v.out)
	tw.AppendHeader(table.Row{"ID", "Title", "Priority", "Tags", "Updated"})
	for _, c := range cards {
		tags := ""
		for i, tag := range c.Tags() {
			if i > 0 {
				tags += ", "
			}
			tags += tag.Name()
		}
		tw.AppendRow(table.Row{c.ID(), c.Title(), c.Priority(), tags, c.UpdatedAt().Format("2006-01-02 15:04")})
	}
	tw.Render()
}

// DisplayActivities renders a table of activity log entries
func (v *ConsoleView) DisplayActivities(activities []model.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(v.out, "no activity")
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(v.out)
	tw.AppendHeader(table.Row{"When", "Description"})
	for _, a := range activities {
		tw.AppendRow(table.Row{a.When().Format("2006-01-02 15:04:05"), a.Description()})
	}
	tw.Render()
}
