package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"gridpick/internal/domain"
	"gridpick/internal/eventbus"
	"gridpick/internal/logger"
	"gridpick/internal/selection"
	"gridpick/internal/ui/views"
)

// Options configures a picking session
type Options struct {
	Resources    []domain.Resource
	Columns      []string
	IDResolver   selection.IDResolver[domain.Resource]
	Filter       selection.Filter[domain.Resource]
	Selected     []string
	ResourceName selection.ResourceName
	PageSize     int
	// HasMoreItems marks the loaded resources as one page of a larger set.
	HasMoreItems           bool
	PaginatedSelectAllText string
	Bus                    eventbus.EventBus
	Log                    *logger.Logger
}

// Model represents the UI state
type Model struct {
	opts Options
	log  *logger.Logger

	ctrl        *selection.Controller[domain.Resource]
	unsubscribe func()
	resources   []domain.Resource

	styles *views.Styles
	table  *views.TableRenderer
	keys   keyMap
	help   help.Model
	pager  paginator.Model

	cursor      int
	visual      bool
	visualStart int

	width  int
	height int

	status    string
	err       error
	removed   []string
	confirmed bool
	quitting  bool
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if len(opts.Columns) == 0 {
		opts.Columns = []string{domain.IDField}
		if len(opts.Resources) > 0 {
			opts.Columns = opts.Resources[0].Keys()
		}
	}

	pager := paginator.New(paginator.WithPerPage(opts.PageSize))
	pager.Type = paginator.Dots

	m := &Model{
		opts:   opts,
		log:    opts.Log.WithFields(map[string]any{"component": "ui"}),
		styles: views.NewStyles(),
		keys:   newKeyMap(),
		help:   help.New(),
		pager:  pager,
	}
	m.rebuild(opts.Resources, opts.Selected, false)
	return m
}

// rebuild mounts a fresh controller over resources carrying the selection
func (m *Model) rebuild(resources []domain.Resource, selected []string, allSelected bool) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}

	ctrlOpts := []selection.Option[domain.Resource]{
		selection.WithSelected[domain.Resource](selected...),
		selection.WithAllSelected[domain.Resource](allSelected),
	}
	if m.opts.IDResolver != nil {
		ctrlOpts = append(ctrlOpts, selection.WithIDResolver(m.opts.IDResolver))
	}
	if m.opts.Filter != nil {
		ctrlOpts = append(ctrlOpts, selection.WithFilter(m.opts.Filter))
	}

	m.ctrl = selection.New(resources, ctrlOpts...)
	m.unsubscribe = publishChanges(m.ctrl, m.opts.Bus)
	m.resources = resources
	m.table = views.NewTableRenderer(m.styles, m.opts.Columns, resources)

	m.pager.TotalPages = 1
	m.pager.SetTotalPages(len(resources))
	m.moveCursor(0)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case helpPagerMsg:
		if msg.err != nil {
			m.setError(errors.Wrap(msg.err, "help pager"))
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(false)
	case key.Matches(msg, m.keys.Confirm):
		return m, m.quit(true)
	case key.Matches(msg, m.keys.Help):
		return m, showHelpInPager(m.keys)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PrevPage):
		m.pager.PrevPage()
		m.cursor = m.pager.Page * m.pager.PerPage
	case key.Matches(msg, m.keys.NextPage):
		m.pager.NextPage()
		m.cursor = m.pager.Page * m.pager.PerPage

	case key.Matches(msg, m.keys.Toggle):
		if m.visual {
			m.applyVisual()
		} else {
			m.toggleCursor()
		}
	case key.Matches(msg, m.keys.ShiftPick):
		m.shiftPick()
	case key.Matches(msg, m.keys.ShiftUp):
		m.extend(-1)
	case key.Matches(msg, m.keys.ShiftDown):
		m.extend(1)
	case key.Matches(msg, m.keys.Visual):
		m.visual = !m.visual
		m.visualStart = m.cursor

	case key.Matches(msg, m.keys.Page):
		selecting := !m.ctrl.EligibleSelected()
		m.handle(selection.Gesture{Kind: selection.Page, Selecting: selecting})
	case key.Matches(msg, m.keys.All):
		m.handle(selection.Gesture{Kind: selection.All, Selecting: !m.ctrl.AllSelected()})
	case key.Matches(msg, m.keys.Clear):
		if m.visual {
			m.visual = false
			break
		}
		m.ctrl.ClearSelection()
		m.status = "selection cleared"
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	}
	return m, nil
}

func (m *Model) quit(confirmed bool) tea.Cmd {
	m.confirmed = confirmed
	m.quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.resources) {
		m.cursor = len(m.resources) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.pager.Page = m.cursor / m.pager.PerPage
}

// handle applies a gesture and records the outcome on the status line
func (m *Model) handle(g selection.Gesture) {
	if err := m.ctrl.Handle(g); err != nil {
		m.setError(err)
		return
	}
	m.err = nil
	m.status = ""
}

func (m *Model) setError(err error) {
	m.err = err
	if m.opts.Bus != nil {
		m.opts.Bus.Publish(eventbus.ErrorEvent{Message: "selection gesture failed", Err: err})
		return
	}
	m.log.Error(err, "selection gesture failed")
}

func (m *Model) cursorID() (string, bool) {
	if len(m.resources) == 0 {
		return "", false
	}
	if !m.ctrl.Eligible(m.cursor) {
		m.status = "row is not selectable"
		return "", false
	}
	id, err := m.ctrl.ResolveID(m.cursor)
	if err != nil {
		m.setError(err)
		return "", false
	}
	return id, true
}

func (m *Model) toggleCursor() {
	id, ok := m.cursorID()
	if !ok {
		return
	}
	m.handle(selection.Gesture{
		Kind:      selection.Single,
		Selecting: !m.ctrl.IsSelected(id),
		Target:    selection.ID(id),
	})
}

// shiftPick behaves like a shift-click on the cursor row
func (m *Model) shiftPick() {
	id, ok := m.cursorID()
	if !ok {
		return
	}
	m.handle(selection.Gesture{
		Kind:      selection.Multi,
		Selecting: !m.ctrl.IsSelected(id),
		Target:    selection.ID(id),
	}.At(m.cursor))
}

// extend moves the cursor and selects everything between the anchor and it
func (m *Model) extend(delta int) {
	if len(m.resources) == 0 {
		return
	}
	if _, ok := m.ctrl.Anchor(); !ok {
		m.multiSelectAt(m.cursor)
	}
	m.moveCursor(delta)
	m.multiSelectAt(m.cursor)
}

func (m *Model) multiSelectAt(row int) {
	g := selection.Gesture{Kind: selection.Multi, Selecting: true}.At(row)
	if _, hasAnchor := m.ctrl.Anchor(); !hasAnchor {
		// Without an anchor the gesture degrades to a single toggle and
		// needs the row's own id.
		if !m.ctrl.Eligible(row) {
			return
		}
		id, err := m.ctrl.ResolveID(row)
		if err != nil {
			m.setError(err)
			return
		}
		g.Target = selection.ID(id)
	}
	m.handle(g)
}

// applyVisual turns the visual block into a Range gesture over the
// eligible rows it covers
func (m *Model) applyVisual() {
	m.visual = false
	lo, hi := min(m.visualStart, m.cursor), max(m.visualStart, m.cursor)

	first, last := -1, -1
	covered := true
	pos := 0
	for i := 0; i <= hi && i < len(m.resources); i++ {
		if !m.ctrl.Eligible(i) {
			continue
		}
		if i >= lo {
			if first < 0 {
				first = pos
			}
			last = pos
			id, err := m.ctrl.ResolveID(i)
			if err != nil {
				m.setError(err)
				return
			}
			if !m.ctrl.IsSelected(id) {
				covered = false
			}
		}
		pos++
	}

	if first < 0 {
		m.status = "no selectable rows in range"
		return
	}
	m.handle(selection.Gesture{
		Kind:      selection.Range,
		Selecting: !covered,
		Target:    selection.Over(first, last),
	})
}

// deleteSelected drops the selected rows and remounts the table over what
// is left
func (m *Model) deleteSelected() {
	ids := m.ctrl.SelectedIDs()
	if len(ids) == 0 {
		m.status = "nothing selected"
		return
	}

	m.ctrl.RemoveSelectedResources(ids)
	if m.opts.Bus != nil {
		m.opts.Bus.Publish(eventbus.ResourcesRemovedEvent{IDs: ids})
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	remaining := make([]domain.Resource, 0, len(m.resources))
	for i, r := range m.resources {
		id, err := m.ctrl.ResolveID(i)
		if err == nil {
			if _, ok := drop[id]; ok {
				continue
			}
		}
		remaining = append(remaining, r)
	}

	deleted := len(m.resources) - len(remaining)
	snap := m.ctrl.Snapshot()
	m.removed = append(m.removed, ids...)
	m.rebuild(remaining, snap.SelectedIDs, snap.AllSelected)
	m.status = fmt.Sprintf("deleted %d %s", deleted, m.noun(deleted))
	m.log.Info("deleted selected rows", map[string]any{"count": deleted})
}

func (m *Model) noun(n int) string {
	name := m.summary().ResourceName
	if n == 1 {
		return strings.ToLower(name.Singular)
	}
	return strings.ToLower(name.Plural)
}

func (m *Model) summary() selection.Summary {
	return m.ctrl.Summary(m.opts.ResourceName, m.opts.HasMoreItems, m.opts.PaginatedSelectAllText)
}

// Result reports the outcome of the session
func (m *Model) Result() domain.PickResult {
	snap := m.ctrl.Snapshot()
	return domain.PickResult{
		Selected:    snap.SelectedIDs,
		AllSelected: snap.AllSelected,
		Removed:     m.removed,
		Confirmed:   m.confirmed,
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("gridpick"))
	b.WriteString("\n")

	s := m.summary()
	line := views.Checkbox(s.BulkState) + " " + s.ActionsLabel
	b.WriteString(m.styles.Summary.Render(line))
	b.WriteString("  ")
	b.WriteString(m.styles.Dim.Render("(" + s.AccessibilityLabel + ")"))
	if s.PaginatedSelectAllText != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Paginated.Render(s.PaginatedSelectAllText))
	}
	if m.visual {
		b.WriteString("  ")
		b.WriteString(m.styles.Visual.Render(" VISUAL "))
	}
	b.WriteString("\n\n")

	if len(m.resources) == 0 {
		b.WriteString(m.styles.Dim.Render("No " + strings.ToLower(s.ResourceName.Plural) + " to show"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.RenderHeader())
		b.WriteString("\n")

		lo, hi := min(m.visualStart, m.cursor), max(m.visualStart, m.cursor)
		start, end := m.pager.GetSliceBounds(len(m.resources))
		for i := start; i < end; i++ {
			selected := false
			if id, err := m.ctrl.ResolveID(i); err == nil {
				selected = m.ctrl.IsSelected(id)
			}
			b.WriteString(m.table.RenderRow(views.Row{
				Resource: m.resources[i],
				Selected: selected,
				Eligible: m.ctrl.Eligible(i),
				Cursor:   i == m.cursor,
				InVisual: m.visual && i >= lo && i <= hi,
			}))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.pager.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.StatusError.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return m.styles.Main.Render(b.String())
}
