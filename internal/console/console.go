// Package console implements the line-oriented front end: a small
// read-eval-print loop that parses commands and forwards them to the
// service, presenting results through a View.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mkessler/taskan/internal/service"
	"github.com/mkessler/taskan/internal/view"
)

// Controller runs the console loop. Every failure is presented through
// the view and the loop continues; only EOF or the exit command stop it.
type Controller struct {
	svc  *service.KanbanService
	view view.View
	in   io.Reader
	out  io.Writer

	// SaveFunc, when set, is invoked by the save command to flush state
	// to the snapshot store.
	SaveFunc func() error
}

// New creates a controller reading commands from in. The prompt and help
// text go to out; entity output goes through v.
func New(svc *service.KanbanService, v view.View, in io.Reader, out io.Writer) *Controller {
	return &Controller{svc: svc, view: v, in: in, out: out}
}

// Run processes commands until EOF or exit
func (c *Controller) Run() error {
	c.view.ShowMessage("Interactive console started. Type 'help' for commands, 'exit' to quit.")

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest := splitCommand(line)
		if cmd == "exit" {
			break
		}
		c.dispatch(cmd, rest)
	}
	return scanner.Err()
}

// splitCommand separates the command word from the remainder of the line
func splitCommand(line string) (string, string) {
	cmd, rest, _ := strings.Cut(line, " ")
	return cmd, strings.TrimSpace(rest)
}

func (c *Controller) dispatch(cmd, rest string) {
	switch cmd {
	case "help":
		c.showHelp()
	case "sample":
		c.handleSample()
	case "create-board":
		c.handleCreateBoard(rest)
	case "add-column":
		c.handleAddColumn(rest)
	case "add-card":
		c.handleAddCard(rest)
	case "move-card":
		c.handleMoveCard(rest)
	case "list-boards":
		c.view.DisplayBoards(c.svc.ListBoards())
	case "list-columns":
		c.handleListColumns(rest)
	case "list-cards":
		c.handleListCards(rest)
	case "log":
		c.handleLog(rest)
	case "save":
		c.handleSave()
	default:
		c.view.ShowError("unknown command, type 'help' for the command list")
	}
}

func (c *Controller) handleSample() {
	if err := c.svc.CreateSampleData(); err != nil {
		c.view.ShowError("creating sample data: " + err.Error())
		return
	}
	c.view.ShowMessage("sample data created")
}

func (c *Controller) handleCreateBoard(name string) {
	if name == "" {
		c.view.ShowError("usage: create-board <name>")
		return
	}
	id, err := c.svc.CreateBoard(name)
	if err != nil {
		c.view.ShowError("creating board: " + err.Error())
		return
	}
	c.view.ShowMessage(fmt.Sprintf("board created: '%s' (id %s)", name, id))
}

func (c *Controller) handleAddColumn(args string) {
	boardID, name := splitCommand(args)
	if boardID == "" || name == "" {
		c.view.ShowError("usage: add-column <boardId> <name>")
		return
	}
	id, err := c.svc.AddColumn(boardID, name)
	if err != nil {
		c.view.ShowError("adding column: " + err.Error())
		return
	}
	c.view.ShowMessage(fmt.Sprintf("column created: '%s' (id %s)", name, id))
}

func (c *Controller) handleAddCard(args string) {
	boardID, rest := splitCommand(args)
	columnID, title := splitCommand(rest)
	if boardID == "" || columnID == "" || title == "" {
		c.view.ShowError("usage: add-card <boardId> <columnId> <title>")
		return
	}
	id, err := c.svc.AddCard(boardID, columnID, title)
	if err != nil {
		c.view.ShowError("adding card: " + err.Error())
		return
	}
	c.view.ShowMessage(fmt.Sprintf("card created: '%s' (id %s)", title, id))
}

func (c *Controller) handleMoveCard(args string) {
	fields := strings.Fields(args)
	if len(fields) != 4 {
		c.view.ShowError("usage: move-card <boardId> <cardId> <fromColumnId> <toColumnId>")
		return
	}
	if err := c.svc.MoveCard(fields[0], fields[1], fields[2], fields[3]); err != nil {
		c.view.ShowError("moving card: " + err.Error())
		return
	}
	c.view.ShowMessage("card moved: " + fields[1])
}

func (c *Controller) handleListColumns(boardID string) {
	if boardID == "" {
		c.view.ShowError("usage: list-columns <boardId>")
		return
	}
	columns, err := c.svc.ListColumns(boardID)
	if err != nil {
		c.view.ShowError("listing columns: " + err.Error())
		return
	}
	c.view.DisplayColumns(columns)
}

func (c *Controller) handleListCards(columnID string) {
	if columnID == "" {
		c.view.ShowError("usage: list-cards <columnId>")
		return
	}
	cards, err := c.svc.ListCards(columnID)
	if err != nil {
		c.view.ShowError("listing cards: " + err.Error())
		return
	}
	c.view.DisplayCards(cards)
}

func (c *Controller) handleLog(boardID string) {
	if boardID == "" {
		c.view.ShowError("usage: log <boardId>")
		return
	}
	activities, err := c.svc.BoardActivities(boardID)
	if err != nil {
		c.view.ShowError("reading activity log: " + err.Error())
		return
	}
	c.view.DisplayActivities(activities)
}

func (c *Controller) handleSave() {
	if c.SaveFunc == nil {
		c.view.ShowError("persistence is disabled")
		return
	}
	if err := c.SaveFunc(); err != nil {
		c.view.ShowError("saving: " + err.Error())
		return
	}
	c.view.ShowMessage("saved")
}

func (c *Controller) showHelp() {
	help := `Commands:
  create-board <name>                                        Create a board, print its id
  add-column <boardId> <name>                                Add a column to a board
  add-card <boardId> <columnId> <title>                      Add a card to a column
  move-card <boardId> <cardId> <fromColumnId> <toColumnId>   Move a card between columns
  list-boards                                                List all boards
  list-columns <boardId>                                     List a board's columns
  list-cards <columnId>                                      List a column's cards
  log <boardId>                                              Show a board's activity log
  sample                                                     Seed demo data
  save                                                       Write state to disk
  help                                                       Show this help
  exit                                                       Quit`
	fmt.Fprintln(c.out, help)
}
