package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkessler/taskan/internal/service"
	"github.com/mkessler/taskan/internal/ui/theme"
)

// activityEntry is the render snapshot of one log entry
type activityEntry struct {
	When        string
	Description string
}

type activitiesLoadedMsg struct {
	boardName string
	entries   []activityEntry
}

type activityErrorMsg struct{ err error }

// ActivityView shows a board's activity log, newest entries last
type ActivityView struct {
	svc    *service.KanbanService
	width  int
	height int

	boardID   string
	boardName string
	entries   []activityEntry
	scroll    int
	errMsg    string
}

// NewActivityView creates an activity view backed by the service
func NewActivityView(svc *service.KanbanService) ActivityView {
	return ActivityView{svc: svc}
}

// SetSize sets the view dimensions
func (v ActivityView) SetSize(width, height int) ActivityView {
	v.width = width
	v.height = height
	return v
}

// SetBoard points the view at a board and reloads
func (v ActivityView) SetBoard(boardID string) (ActivityView, tea.Cmd) {
	v.boardID = boardID
	v.scroll = 0
	return v, v.load()
}

func (v ActivityView) load() tea.Cmd {
	boardID := v.boardID
	return func() tea.Msg {
		if boardID == "" {
			return activitiesLoadedMsg{}
		}
		board := v.svc.FindBoard(boardID)
		if board == nil {
			return activitiesLoadedMsg{}
		}
		activities, err := v.svc.BoardActivities(boardID)
		if err != nil {
			return activityErrorMsg{err: err}
		}
		entries := make([]activityEntry, 0, len(activities))
		for _, a := range activities {
			entries = append(entries, activityEntry{
				When:        a.When().Format("2006-01-02 15:04"),
				Description: a.Description(),
			})
		}
		return activitiesLoadedMsg{boardName: board.Name(), entries: entries}
	}
}

// Update handles messages
func (v ActivityView) Update(msg tea.Msg) (ActivityView, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		v.boardName = msg.boardName
		v.entries = msg.entries
		v.errMsg = ""
		// Jump to the tail, the most recent activity
		if max := v.maxScroll(); v.scroll > max {
			v.scroll = max
		}
		return v, nil

	case activityErrorMsg:
		v.errMsg = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.scroll < v.maxScroll() {
				v.scroll++
			}
		case "k", "up":
			if v.scroll > 0 {
				v.scroll--
			}
		case "g":
			v.scroll = 0
		case "G":
			v.scroll = v.maxScroll()
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v ActivityView) visibleRows() int {
	rows := v.height - 5
	if rows < 1 {
		return 1
	}
	return rows
}

func (v ActivityView) maxScroll() int {
	max := len(v.entries) - v.visibleRows()
	if max < 0 {
		return 0
	}
	return max
}

// View renders the activity log
func (v ActivityView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := "Activity"
	if v.boardName != "" {
		title = fmt.Sprintf("Activity: %s", v.boardName)
	}
	titleRow := styles.Title.Render(title)

	if len(v.entries) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No activity yet. Moving cards writes the log.")
		return lipgloss.JoinVertical(lipgloss.Left, titleRow, "", empty)
	}

	rows := v.visibleRows()
	start := v.scroll
	end := start + rows
	if end > len(v.entries) {
		end = len(v.entries)
	}

	whenStyle := lipgloss.NewStyle().Foreground(t.Subtle)
	var lines []string
	for _, e := range v.entries[start:end] {
		lines = append(lines, fmt.Sprintf("%s  %s", whenStyle.Render(e.When), e.Description))
	}

	body := lipgloss.NewStyle().
		Width(v.width - 4).
		Height(v.height - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	position := fmt.Sprintf("%d-%d of %d", start+1, end, len(v.entries))
	footerText := "j/k: scroll • g/G: ends • r: refresh • " + position
	if v.errMsg != "" {
		footerText = v.errMsg
	}
	footer := lipgloss.NewStyle().Foreground(t.Subtle).Render(footerText)

	return lipgloss.JoinVertical(lipgloss.Left, titleRow, body, footer)
}
