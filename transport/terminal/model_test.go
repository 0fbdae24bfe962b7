package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/session"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()

	for _, key := range keys {
		next, _ := m.Update(key)
		model, ok := next.(Model)
		require.True(t, ok)
		m = model
	}

	return m
}

func TestModel_NumberKeysPlayCells(t *testing.T) {
	// Given: a new session
	s := session.New("local")
	m := New(s)

	// When: pressing 1 then 5
	m = press(t, m, runes("1"), runes("5"))

	// Then: X is on cell 0 and O on cell 4
	board, cursor := s.Current()
	assert.Equal(t, 2, cursor)
	assert.Equal(t, entity.X, board[0])
	assert.Equal(t, entity.O, board[4])
	assert.Contains(t, m.View(), "Next player: X")
}

func TestModel_SelectionAndEnter(t *testing.T) {
	s := session.New("local")
	m := New(s)

	// center, then up and left to the corner
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, runes("h"), tea.KeyMsg{Type: tea.KeyEnter})

	board, _ := s.Current()
	assert.Equal(t, entity.X, board[0])
	assert.Equal(t, 0, m.selected)

	// can't leave the board or wrap to the previous row
	m = press(t, m, runes("k"), runes("h"))
	assert.Equal(t, 0, m.selected)

	m = press(t, m, runes("l"), runes("l"), runes("l"))
	assert.Equal(t, 2, m.selected)
}

func TestModel_RejectedClickShowsNotice(t *testing.T) {
	s := session.New("local")
	m := New(s)

	m = press(t, m, runes("1"), runes("1"))

	assert.Equal(t, 2, s.Len())
	assert.Contains(t, m.View(), "That cell is taken.")

	// the notice clears on the next key
	m = press(t, m, runes("2"))
	assert.NotContains(t, m.View(), "That cell is taken.")
}

func TestModel_HistoryKeys(t *testing.T) {
	s := session.New("local")
	m := New(s)
	m = press(t, m, runes("1"), runes("5"), runes("2"))

	// step back twice
	m = press(t, m, runes("["), runes("["))
	_, cursor := s.Current()
	assert.Equal(t, 1, cursor)
	assert.Contains(t, m.View(), "Next player: O")

	// forward once
	m = press(t, m, runes("]"))
	_, cursor = s.Current()
	assert.Equal(t, 2, cursor)

	// to the start, then past it
	m = press(t, m, runes("g"), runes("["))
	_, cursor = s.Current()
	assert.Equal(t, 0, cursor)
	assert.Contains(t, m.View(), "No such move in history.")
	assert.Equal(t, 4, s.Len())
}

func TestModel_WinAndNewGame(t *testing.T) {
	s := session.New("local")
	m := New(s)

	// X@0, O@4, X@1, O@5, X@2
	m = press(t, m, runes("1"), runes("5"), runes("2"), runes("6"), runes("3"))
	view := m.View()
	assert.Contains(t, view, "Winner: X")
	assert.Contains(t, view, "Go to move #5")

	m = press(t, m, runes("9"))
	assert.Contains(t, m.View(), "The game is over.")

	m = press(t, m, runes("n"))
	assert.Equal(t, 1, s.Len())
	assert.Contains(t, m.View(), "Next player: X")
}

func TestModel_Quit(t *testing.T) {
	m := New(session.New("local"))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m := New(session.New("local"))

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.Equal(t, m, next)
	assert.Nil(t, m.Init())
}
