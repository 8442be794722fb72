package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridpick/internal/domain"
	"gridpick/internal/eventbus"
	"gridpick/internal/logger"
	"gridpick/internal/selection"
)

func rows(n int) []domain.Resource {
	out := make([]domain.Resource, n)
	for i := range out {
		out[i] = domain.Resource{"id": fmt.Sprintf("r%d", i), "title": fmt.Sprintf("Row %d", i)}
	}
	return out
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	shiftDown = tea.KeyMsg{Type: tea.KeyShiftDown}
	right     = tea.KeyMsg{Type: tea.KeyRight}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
)

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func TestSpaceTogglesCursorRow(t *testing.T) {
	m := NewModel(Options{Resources: rows(3)})

	press(m, down, space)
	assert.Equal(t, []string{"r1"}, m.Result().Selected)

	press(m, space)
	assert.Empty(t, m.Result().Selected)
}

func TestShiftPickSelectsRangeFromAnchor(t *testing.T) {
	m := NewModel(Options{Resources: rows(6)})

	press(m, down, runes("S"), down, down, down, runes("S"))

	assert.ElementsMatch(t, []string{"r1", "r2", "r3", "r4"}, m.Result().Selected)
}

func TestShiftDownExtendsSelection(t *testing.T) {
	m := NewModel(Options{Resources: rows(5)})

	press(m, shiftDown, shiftDown)

	assert.ElementsMatch(t, []string{"r0", "r1", "r2"}, m.Result().Selected)
}

func TestFilteredRowsCannotBeToggled(t *testing.T) {
	m := NewModel(Options{
		Resources: rows(4),
		Filter:    func(_ domain.Resource, index int) bool { return index%2 == 0 },
	})

	press(m, down, space)
	assert.Empty(t, m.Result().Selected)
	assert.Equal(t, "row is not selectable", m.status)

	press(m, runes("a"))
	assert.ElementsMatch(t, []string{"r0", "r2"}, m.Result().Selected)
}

func TestVisualRangeTogglesEligibleSpan(t *testing.T) {
	m := NewModel(Options{
		Resources: rows(6),
		Filter:    func(_ domain.Resource, index int) bool { return index != 1 },
	})

	press(m, down, down, runes("v"), down, down, space)
	assert.ElementsMatch(t, []string{"r2", "r3", "r4"}, m.Result().Selected)
	assert.False(t, m.visual)

	press(m, runes("v"), runes("k"), space)
	assert.Equal(t, []string{"r2"}, m.Result().Selected, "a fully selected block is cleared")
}

func TestEscLeavesVisualModeBeforeClearing(t *testing.T) {
	m := NewModel(Options{Resources: rows(3)})
	press(m, runes("a"), runes("v"))

	press(m, esc)
	assert.False(t, m.visual)
	assert.Len(t, m.Result().Selected, 3)

	press(m, esc)
	assert.Empty(t, m.Result().Selected)
	assert.False(t, m.Result().AllSelected)
}

func TestPageTogglesEverything(t *testing.T) {
	m := NewModel(Options{Resources: rows(3)})

	press(m, runes("p"))
	assert.Len(t, m.Result().Selected, 3)
	assert.False(t, m.Result().AllSelected)

	press(m, runes("p"))
	assert.Empty(t, m.Result().Selected)
}

func TestPageSelectsWhenOnlyUnknownIDsAreSeeded(t *testing.T) {
	m := NewModel(Options{Resources: rows(3), Selected: []string{"gone1", "gone2", "gone3"}})

	press(m, runes("p"))

	assert.ElementsMatch(t, []string{"r0", "r1", "r2"}, m.Result().Selected)
}

func TestDeleteRemovesSelectedRows(t *testing.T) {
	m := NewModel(Options{Resources: rows(5)})

	press(m, down, space, runes("x"))

	res := m.Result()
	assert.Equal(t, []string{"r1"}, res.Removed)
	assert.Empty(t, res.Selected)
	require.Len(t, m.resources, 4)
	for _, r := range m.resources {
		assert.NotEqual(t, "r1", r["id"])
	}
	assert.Equal(t, "deleted 1 item", m.status)
}

func TestDeleteAllClearsAllSelected(t *testing.T) {
	m := NewModel(Options{Resources: rows(3)})

	press(m, runes("a"), runes("x"))

	assert.Empty(t, m.resources)
	assert.False(t, m.Result().AllSelected)
	assert.Contains(t, m.View(), "No items to show")
}

func TestConfirmAndQuit(t *testing.T) {
	m := NewModel(Options{Resources: rows(2)})
	press(m, space)

	cmd := press(m, enter)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Result().Confirmed)
	assert.Equal(t, "", m.View())

	m = NewModel(Options{Resources: rows(2)})
	cmd = press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.False(t, m.Result().Confirmed)
}

func TestIdentityErrorShowsOnStatusLine(t *testing.T) {
	m := NewModel(Options{Resources: []domain.Resource{{"title": "no id"}}})

	press(m, space)

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "error:")
}

func TestViewShowsSummaryAndPaging(t *testing.T) {
	m := NewModel(Options{
		Resources:    rows(5),
		PageSize:     2,
		HasMoreItems: true,
		ResourceName: selection.ResourceName{Singular: "order", Plural: "orders"},
	})

	press(m, runes("a"))
	view := m.View()
	assert.Contains(t, view, "5+ selected")
	assert.Contains(t, view, "All 5+ orders are selected")
	assert.Contains(t, view, "Row 0")
	assert.NotContains(t, view, "Row 2")

	press(m, right)
	assert.Equal(t, 2, m.cursor)
	assert.Contains(t, m.View(), "Row 2")
}

func TestSelectionChangesReachTheBus(t *testing.T) {
	bus := eventbus.New(logger.Nop())
	defer bus.Close()

	events := make(chan eventbus.SelectionChangedEvent, 4)
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		events <- e.(eventbus.SelectionChangedEvent)
	})

	m := NewModel(Options{Resources: rows(3), Bus: bus})
	press(m, space)

	select {
	case e := <-events:
		assert.Equal(t, "single", e.Gesture)
		assert.Equal(t, []string{"r0"}, e.Added)
		assert.Equal(t, 1, e.Total)
	case <-time.After(time.Second):
		t.Fatal("no SelectionChanged event")
	}
}

func TestHelpContentListsBindings(t *testing.T) {
	content := RenderHelpContent(newKeyMap())

	for _, want := range []string{"Navigation", "Selection", "Bulk", "visual range", "shift-click"} {
		assert.Contains(t, content, want)
	}
}
