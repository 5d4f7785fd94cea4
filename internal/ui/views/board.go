// Package views holds the TUI views: the kanban board itself and the
// activity log.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkessler/taskan/internal/model"
	"github.com/mkessler/taskan/internal/service"
	"github.com/mkessler/taskan/internal/ui/theme"
)

// BoardMode represents the current input mode
type BoardMode int

const (
	BoardModeNormal BoardMode = iota
	BoardModeAddCard
	BoardModeAddColumn
	BoardModeAddBoard
	BoardModeEditTitle
)

// cardItem is the render snapshot of one card
type cardItem struct {
	ID       string
	Title    string
	Priority int
	Tags     []string
}

// columnItem is the render snapshot of one column
type columnItem struct {
	ID    string
	Name  string
	Cards []cardItem
}

// boardLoadedMsg carries a fresh snapshot of the current board
type boardLoadedMsg struct {
	boardID   string
	boardName string
	boardIDs  []string
	columns   []columnItem
}

// boardChangedMsg signals that a mutation went through and the view
// should reload.
type boardChangedMsg struct{}

type boardErrorMsg struct{ err error }

// BoardView renders one board's columns side by side and routes all
// mutations through the service.
type BoardView struct {
	svc    *service.KanbanService
	width  int
	height int

	boardID   string
	boardName string
	boardIDs  []string
	columns   []columnItem

	currentColumn int
	cursorRow     int
	columnScroll  []int

	mode       BoardMode
	textInput  textinput.Model
	editCardID string

	statusMsg string
}

// NewBoardView creates a board view backed by the service
func NewBoardView(svc *service.KanbanService) BoardView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return BoardView{
		svc:       svc,
		textInput: ti,
	}
}

// Init loads the board
func (v BoardView) Init() tea.Cmd {
	return v.load()
}

// SetSize sets the view dimensions
func (v BoardView) SetSize(width, height int) BoardView {
	v.width = width
	v.height = height
	return v
}

// BoardID returns the id of the board currently shown, empty when no
// board exists yet.
func (v BoardView) BoardID() string {
	return v.boardID
}

// load snapshots the current board for rendering. When no board is
// selected yet the first board (by id) is picked.
func (v BoardView) load() tea.Cmd {
	boardID := v.boardID
	return func() tea.Msg {
		boards := v.svc.ListBoards()
		if len(boards) == 0 {
			return boardLoadedMsg{}
		}

		var board *model.Board
		ids := make([]string, 0, len(boards))
		for _, b := range boards {
			ids = append(ids, b.ID())
			if b.ID() == boardID {
				board = b
			}
		}
		if board == nil {
			board = boards[0]
		}

		columns, err := v.svc.ListColumns(board.ID())
		if err != nil {
			return boardErrorMsg{err: err}
		}

		items := make([]columnItem, 0, len(columns))
		for _, column := range columns {
			cards, err := v.svc.ListCards(column.ID())
			if err != nil {
				return boardErrorMsg{err: err}
			}
			item := columnItem{ID: column.ID(), Name: column.Name()}
			for _, card := range cards {
				ci := cardItem{ID: card.ID(), Title: card.Title(), Priority: card.Priority()}
				for _, tag := range card.Tags() {
					ci.Tags = append(ci.Tags, tag.Name())
				}
				item.Cards = append(item.Cards, ci)
			}
			items = append(items, item)
		}

		return boardLoadedMsg{
			boardID:   board.ID(),
			boardName: board.Name(),
			boardIDs:  ids,
			columns:   items,
		}
	}
}

// Update handles messages
func (v BoardView) Update(msg tea.Msg) (BoardView, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		v.boardID = msg.boardID
		v.boardName = msg.boardName
		v.boardIDs = msg.boardIDs
		v.columns = msg.columns
		if len(v.columnScroll) != len(v.columns) {
			v.columnScroll = make([]int, len(v.columns))
		}
		v.clampCursor()
		return v, nil

	case boardChangedMsg:
		return v, v.load()

	case boardErrorMsg:
		v.statusMsg = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case BoardModeNormal:
			return v.handleNormalMode(msg)
		default:
			return v.handleInputMode(msg)
		}
	}

	if v.mode != BoardModeNormal {
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v BoardView) handleNormalMode(msg tea.KeyMsg) (BoardView, tea.Cmd) {
	v.statusMsg = ""

	switch msg.String() {
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < len(v.columns)-1 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	case "j", "down":
		if col := v.column(v.currentColumn); col != nil && v.cursorRow < len(col.Cards)-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case "g":
		v.cursorRow = 0
		if v.currentColumn < len(v.columnScroll) {
			v.columnScroll[v.currentColumn] = 0
		}
		return v, nil

	case "G":
		if col := v.column(v.currentColumn); col != nil && len(col.Cards) > 0 {
			v.cursorRow = len(col.Cards) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	case "H":
		return v, v.moveCard(-1)

	case "L":
		return v, v.moveCard(1)

	case "b":
		return v.cycleBoard()

	case "a":
		if v.boardID == "" || len(v.columns) == 0 {
			v.statusMsg = "add a column first"
			return v, nil
		}
		v.mode = BoardModeAddCard
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New card..."
		v.textInput.Focus()
		return v, nil

	case "c":
		if v.boardID == "" {
			v.statusMsg = "create a board first"
			return v, nil
		}
		v.mode = BoardModeAddColumn
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New column..."
		v.textInput.Focus()
		return v, nil

	case "B":
		v.mode = BoardModeAddBoard
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New board..."
		v.textInput.Focus()
		return v, nil

	case "e", "enter":
		if card := v.selectedCard(); card != nil {
			v.mode = BoardModeEditTitle
			v.editCardID = card.ID
			v.textInput.SetValue(card.Title)
			v.textInput.Placeholder = ""
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil

	case "p":
		return v, v.bumpPriority(1)

	case "P":
		return v, v.bumpPriority(-1)
	}

	return v, nil
}

func (v BoardView) handleInputMode(msg tea.KeyMsg) (BoardView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(v.textInput.Value())
		mode := v.mode
		v.mode = BoardModeNormal
		v.textInput.Blur()
		if value == "" {
			return v, nil
		}
		switch mode {
		case BoardModeAddCard:
			return v, v.createCard(value)
		case BoardModeAddColumn:
			return v, v.createColumn(value)
		case BoardModeAddBoard:
			return v, v.createBoard(value)
		case BoardModeEditTitle:
			cardID := v.editCardID
			v.editCardID = ""
			return v, v.renameCard(cardID, value)
		}
		return v, nil

	case "esc":
		v.mode = BoardModeNormal
		v.textInput.Blur()
		v.editCardID = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// column returns the column snapshot at index, or nil
func (v *BoardView) column(index int) *columnItem {
	if index < 0 || index >= len(v.columns) {
		return nil
	}
	return &v.columns[index]
}

// selectedCard returns the card under the cursor, or nil
func (v *BoardView) selectedCard() *cardItem {
	col := v.column(v.currentColumn)
	if col == nil || v.cursorRow >= len(col.Cards) {
		return nil
	}
	return &col.Cards[v.cursorRow]
}

func (v *BoardView) clampCursor() {
	if v.currentColumn >= len(v.columns) {
		v.currentColumn = len(v.columns) - 1
	}
	if v.currentColumn < 0 {
		v.currentColumn = 0
	}
	col := v.column(v.currentColumn)
	if col == nil || v.cursorRow >= len(col.Cards) {
		if col != nil && len(col.Cards) > 0 {
			v.cursorRow = len(col.Cards) - 1
		} else {
			v.cursorRow = 0
		}
	}
	v.ensureCursorVisible()
}

func (v *BoardView) ensureCursorVisible() {
	if v.currentColumn >= len(v.columnScroll) {
		return
	}
	visible := v.visibleItemCount()
	if visible <= 0 {
		visible = 5
	}
	if v.cursorRow >= v.columnScroll[v.currentColumn]+visible {
		v.columnScroll[v.currentColumn] = v.cursorRow - visible + 1
	}
	if v.cursorRow < v.columnScroll[v.currentColumn] {
		v.columnScroll[v.currentColumn] = v.cursorRow
	}
}

// visibleItemCount returns how many cards fit in a column, after the
// border, header row and scroll indicators.
func (v *BoardView) visibleItemCount() int {
	available := v.height - 7
	if available < 1 {
		return 1
	}
	return available
}

// moveCard moves the selected card to the adjacent column, the keyboard
// stand-in for dragging a card across the board.
func (v BoardView) moveCard(direction int) tea.Cmd {
	card := v.selectedCard()
	if card == nil {
		return nil
	}
	target := v.currentColumn + direction
	from := v.column(v.currentColumn)
	to := v.column(target)
	if from == nil || to == nil {
		return nil
	}

	boardID := v.boardID
	cardID := card.ID
	fromID := from.ID
	toID := to.ID
	return func() tea.Msg {
		if err := v.svc.MoveCard(boardID, cardID, fromID, toID); err != nil {
			return boardErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

func (v BoardView) createCard(title string) tea.Cmd {
	col := v.column(v.currentColumn)
	if col == nil {
		return nil
	}
	boardID := v.boardID
	columnID := col.ID
	return func() tea.Msg {
		if _, err := v.svc.AddCard(boardID, columnID, title); err != nil {
			return boardErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

func (v BoardView) createColumn(name string) tea.Cmd {
	boardID := v.boardID
	return func() tea.Msg {
		if _, err := v.svc.AddColumn(boardID, name); err != nil {
			return boardErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

func (v BoardView) createBoard(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := v.svc.CreateBoard(name); err != nil {
			return boardErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

func (v BoardView) renameCard(cardID, title string) tea.Cmd {
	return func() tea.Msg {
		if err := v.svc.RenameCard(cardID, title); err != nil {
			return boardErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

func (v BoardView) bumpPriority(delta int) tea.Cmd {
	card := v.selectedCard()
	if card == nil {
		return nil
	}
	cardID := card.ID
	next := card.Priority + delta
	return func() tea.Msg {
		if err := v.svc.SetCardPriority(cardID, next); err != nil {
			return boardErrorMsg{err: err}
		}
		return boardChangedMsg{}
	}
}

// cycleBoard switches to the next board by id
func (v BoardView) cycleBoard() (BoardView, tea.Cmd) {
	if len(v.boardIDs) < 2 {
		return v, nil
	}
	for i, id := range v.boardIDs {
		if id == v.boardID {
			v.boardID = v.boardIDs[(i+1)%len(v.boardIDs)]
			v.currentColumn = 0
			v.cursorRow = 0
			v.columnScroll = nil
			return v, v.load()
		}
	}
	return v, nil
}

// View renders the board
func (v BoardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	if v.boardID == "" {
		return styles.Panel.Render("No boards yet. Press B to create one.")
	}

	numVisible := len(v.columns)
	if numVisible == 0 {
		title := styles.Title.Render(v.boardName)
		return title + "\n" + styles.Panel.Render("No columns yet. Press c to add one.")
	}
	maxVisible := v.width / 25
	if maxVisible < 1 {
		maxVisible = 1
	}
	if numVisible > maxVisible {
		numVisible = maxVisible
	}

	// Window of columns containing the active one
	startCol := 0
	if v.currentColumn >= numVisible {
		startCol = v.currentColumn - numVisible + 1
	}
	endCol := startCol + numVisible
	if endCol > len(v.columns) {
		endCol = len(v.columns)
	}

	colWidth := (v.width - 4) / numVisible
	if colWidth < 25 {
		colWidth = 25
	}

	headerStyle := func(active bool) lipgloss.Style {
		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Info).
			Width(colWidth).
			Align(lipgloss.Center)
		if active {
			s = s.Background(t.Highlight)
		}
		return s
	}

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	var headers []string
	for i := startCol; i < endCol; i++ {
		col := v.columns[i]
		header := fmt.Sprintf("%s (%d)", col.Name, len(col.Cards))
		headers = append(headers, headerStyle(i == v.currentColumn).Render(header))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	visible := v.visibleItemCount()
	var cols []string
	for i := startCol; i < endCol; i++ {
		col := v.columns[i]
		scroll := 0
		if i < len(v.columnScroll) {
			scroll = v.columnScroll[i]
		}

		startIdx := scroll
		endIdx := scroll + visible
		if startIdx > len(col.Cards) {
			startIdx = len(col.Cards)
		}
		if endIdx > len(col.Cards) {
			endIdx = len(col.Cards)
		}

		var items []string
		if scroll > 0 {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↑ %d more", scroll)))
		}

		for j := startIdx; j < endIdx; j++ {
			card := col.Cards[j]
			cardStyle := styles.CardNormal.Width(colWidth - 4)
			if i == v.currentColumn && j == v.cursorRow {
				cardStyle = styles.CardSelected.Width(colWidth - 4)
			}

			marker := lipgloss.NewStyle().
				Foreground(t.PriorityColor(card.Priority)).
				Render("●")

			tagStr := ""
			if len(card.Tags) > 0 {
				tagStr = lipgloss.NewStyle().
					Foreground(t.Info).
					Render(" [" + strings.Join(card.Tags, ",") + "]")
			}

			title := card.Title
			maxTitle := colWidth - 8 - len(tagStr)
			if maxTitle < 10 {
				maxTitle = 10
			}
			if len(title) > maxTitle {
				title = title[:maxTitle-3] + "..."
			}

			items = append(items, cardStyle.Render(fmt.Sprintf("%s %s%s", marker, title, tagStr)))
		}

		if endIdx < len(col.Cards) {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↓ %d more", len(col.Cards)-endIdx)))
		}

		content := strings.Join(items, "\n")
		if len(col.Cards) == 0 {
			content = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("(empty)")
		}

		cs := columnStyle
		if i == v.currentColumn {
			cs = cs.BorderForeground(t.Primary)
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	titleRow := styles.Title.Render(fmt.Sprintf("%s (%s)", v.boardName, v.boardID))

	footer := v.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, titleRow, headerRow, columnsRow, footer)
}

func (v BoardView) renderFooter() string {
	t := theme.Current.Theme

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(v.width - 4)

	switch v.mode {
	case BoardModeAddCard:
		return inputStyle.Render("Add card: " + v.textInput.View())
	case BoardModeAddColumn:
		return inputStyle.Render("Add column: " + v.textInput.View())
	case BoardModeAddBoard:
		return inputStyle.Render("Add board: " + v.textInput.View())
	case BoardModeEditTitle:
		return inputStyle.Render("Edit: " + v.textInput.View())
	}

	hints := "h/l: column • j/k: nav • H/L: move • a: card • c: column • B: board • b: next board • e: edit • p/P: priority"
	if v.statusMsg != "" {
		hints = v.statusMsg
	}
	return lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
}

// IsInputMode returns whether the view is capturing text input
func (v BoardView) IsInputMode() bool {
	return v.mode != BoardModeNormal
}
