// Package terminal is a hot-seat terminal front end for one game session.
//
// The model runs inside the bubbletea event loop and drives the session directly, so it
// is used from a single goroutine only.
package terminal

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/session"
)

const helpText = "1-9/enter: play  arrows/hjkl: select  [ ]: step history  g: start  n: new game  q: quit"

var (
	cellStyle      = lipgloss.NewStyle().Width(3).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	highlightStyle = cellStyle.Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0"))
	selectedStyle  = cellStyle.BorderForeground(lipgloss.Color("12")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	currentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	rejectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model renders a session and turns key presses into cell clicks and history jumps.
type Model struct {
	session  *session.Session
	selected int
	notice   string
}

func New(s *session.Session) Model {
	return Model{session: s, selected: 4}
}

// Run blocks until the player quits.
func Run(s *session.Session, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(New(s), opts...).Run(); err != nil {
		return fmt.Errorf("terminal program failed: %w", err)
	}

	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.notice = ""

	switch k := key.String(); k {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selected = int(k[0] - '1')
		m.click(m.selected)
	case "enter", " ":
		m.click(m.selected)
	case "up", "k":
		m.moveSelection(-3)
	case "down", "j":
		m.moveSelection(3)
	case "left", "h":
		m.moveSelection(-1)
	case "right", "l":
		m.moveSelection(1)
	case "[":
		_, cursor := m.session.Current()
		m.jump(cursor - 1)
	case "]":
		_, cursor := m.session.Current()
		m.jump(cursor + 1)
	case "g":
		m.jump(0)
	case "n":
		m.session.Reset()
	}

	return m, nil
}

func (m *Model) click(cell int) {
	if err := m.session.OnCellClick(cell); err != nil {
		m.notice = rejectionNotice(err)
	}
}

func (m *Model) jump(move int) {
	if err := m.session.OnHistoryJump(move); err != nil {
		m.notice = rejectionNotice(err)
	}
}

func (m *Model) moveSelection(delta int) {
	next := m.selected + delta
	if next < 0 || next >= entity.BoardSize {
		return
	}

	// left and right stay on the same row
	if (delta == -1 || delta == 1) && next/3 != m.selected/3 {
		return
	}

	m.selected = next
}

func rejectionNotice(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is taken."
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over. Jump back in history or start a new game."
	case errors.Is(err, apperror.ErrInvalidMove):
		return "No such move in history."
	default:
		return err.Error()
	}
}

func (m Model) View() string {
	view := m.session.View()

	var sb strings.Builder
	sb.WriteString(statusStyle.Render(view.Status))
	sb.WriteByte('\n')

	rows := make([]string, 0, 3)
	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, m.renderSquare(row*3+col, view.Squares[row*3+col]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	board := lipgloss.JoinVertical(lipgloss.Left, rows...)

	moves := make([]string, 0, len(view.Moves))
	for _, move := range view.Moves {
		line := fmt.Sprintf("%d. %s", move.Move+1, move.Label)
		if move.Current {
			line = currentStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		moves = append(moves, line)
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "   ", strings.Join(moves, "\n")))
	sb.WriteByte('\n')

	if m.notice != "" {
		sb.WriteString(rejectStyle.Render(m.notice))
		sb.WriteByte('\n')
	}

	sb.WriteString(mutedStyle.Render(helpText))
	sb.WriteByte('\n')

	return sb.String()
}

func (m Model) renderSquare(cell int, square session.Square) string {
	value := square.Value
	if value == "" {
		value = " "
	}

	switch {
	case square.Highlight:
		return highlightStyle.Render(value)
	case cell == m.selected:
		return selectedStyle.Render(value)
	default:
		return cellStyle.Render(value)
	}
}
