package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/otto8-ai/otto-admin/pkg/pagination"
)

const refreshGlyph = "↻"

// sectionState is what the accordion remembers about a section between rebuilds
type sectionState struct {
	open   bool
	search *SearchBar
}

// Accordion lays out sections that open and close independently. Sections
// are supplied again on every data change; open state, search text and the
// cursor are keyed by Section.Value so they survive the rebuild.
type Accordion struct {
	sections  []Section
	states    map[string]*sectionState
	focus     string
	row       int // -1 while the header has the cursor
	searching bool

	spinner spinner.Model
	keys    KeyMap
	width   int
}

// NewAccordion creates an empty accordion
func NewAccordion(keys KeyMap) *Accordion {
	return &Accordion{
		states: map[string]*sectionState{},
		row:    -1,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))),
		),
		keys: keys,
	}
}

// Init starts the refresh spinner
func (a *Accordion) Init() tea.Cmd {
	return a.spinner.Tick
}

// SetWidth sets the rendering width
func (a *Accordion) SetWidth(width int) {
	a.width = width
	for _, st := range a.states {
		if st.search != nil {
			st.search.SetWidth(width - 2)
		}
	}
}

// SetSections replaces the sections
func (a *Accordion) SetSections(sections ...Section) {
	a.sections = sections
	for _, s := range sections {
		st := a.state(s.Value())
		if s.CanSearch() && st.search == nil {
			st.search = NewSearchBar()
			st.search.SetWidth(a.width - 2)
		}
	}

	sec := a.focused()
	if sec == nil {
		a.row = -1
		if len(sections) > 0 {
			a.focus = sections[0].Value()
		}
		return
	}
	if !a.states[sec.Value()].open {
		a.row = -1
	} else if a.row >= sec.ItemCount() {
		a.row = sec.ItemCount() - 1
	}
	if a.searching && !sec.CanSearch() {
		a.searching = false
	}
}

func (a *Accordion) state(value string) *sectionState {
	st, ok := a.states[value]
	if !ok {
		st = &sectionState{}
		a.states[value] = st
	}
	return st
}

func (a *Accordion) focused() Section {
	for _, s := range a.sections {
		if s.Value() == a.focus {
			return s
		}
	}
	return nil
}

// Focused returns the section under the cursor and the focused row, -1 for
// the header
func (a *Accordion) Focused() (Section, int) {
	return a.focused(), a.row
}

// FocusedCopyValue returns the copy text of the focused row, if any
func (a *Accordion) FocusedCopyValue() (string, bool) {
	sec := a.focused()
	if sec == nil || a.row < 0 {
		return "", false
	}
	return sec.Copy(a.row)
}

func (a *Accordion) IsOpen(value string) bool {
	st, ok := a.states[value]
	return ok && st.open
}

func (a *Accordion) SetOpen(value string, open bool) {
	a.state(value).open = open
	if !open && value == a.focus {
		a.row = -1
	}
}

func (a *Accordion) Toggle(value string) {
	a.SetOpen(value, !a.IsOpen(value))
}

// Searching reports whether a search input has the keyboard
func (a *Accordion) Searching() bool {
	return a.searching
}

// SearchValue returns the text typed into the search input of a section
func (a *Accordion) SearchValue(value string) string {
	st, ok := a.states[value]
	if !ok || st.search == nil {
		return ""
	}
	return st.search.Value()
}

// Update handles spinner ticks and keys
func (a *Accordion) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return nil
}

func (a *Accordion) handleKey(msg tea.KeyMsg) tea.Cmd {
	sec := a.focused()
	if sec == nil {
		return nil
	}
	if a.searching {
		return a.updateSearch(sec, msg)
	}

	switch {
	case key.Matches(msg, a.keys.Up):
		a.move(-1)
	case key.Matches(msg, a.keys.Down):
		a.move(1)
	case key.Matches(msg, a.keys.Refresh):
		// Refresh never opens or closes the section
		return sec.Refresh()
	case key.Matches(msg, a.keys.Search):
		if !sec.CanSearch() {
			return nil
		}
		a.SetOpen(sec.Value(), true)
		a.row = -1
		a.searching = true
		return a.states[sec.Value()].search.SetActive(true)
	case key.Matches(msg, a.keys.PrevPage):
		if p := sec.Pagination(); p != nil {
			return sec.ChangePage(p.Page - 1)
		}
	case key.Matches(msg, a.keys.NextPage):
		if p := sec.Pagination(); p != nil {
			return sec.ChangePage(p.Page + 1)
		}
	case key.Matches(msg, a.keys.Delete):
		if a.row >= 0 {
			return sec.Delete(a.row)
		}
	case key.Matches(msg, a.keys.Toggle):
		if a.row >= 0 {
			return sec.Select(a.row)
		}
		a.Toggle(sec.Value())
	}
	return nil
}

func (a *Accordion) updateSearch(sec Section, msg tea.KeyMsg) tea.Cmd {
	search := a.states[sec.Value()].search
	if key.Matches(msg, a.keys.Exit) {
		a.searching = false
		search.SetActive(false)
		return nil
	}

	changed, cmd := search.Update(msg)
	if !changed {
		return cmd
	}
	return tea.Batch(cmd, sec.Search(search.Value()))
}

type position struct {
	value string
	row   int
}

// move walks the cursor over headers and the item rows of open sections
func (a *Accordion) move(delta int) {
	var positions []position
	current := 0
	for _, s := range a.sections {
		if s.Value() == a.focus && a.row < 0 {
			current = len(positions)
		}
		positions = append(positions, position{value: s.Value(), row: -1})
		if !a.IsOpen(s.Value()) {
			continue
		}
		for i := 0; i < s.ItemCount(); i++ {
			if s.Value() == a.focus && a.row == i {
				current = len(positions)
			}
			positions = append(positions, position{value: s.Value(), row: i})
		}
	}
	if len(positions) == 0 {
		return
	}

	next := current + delta
	if next < 0 || next >= len(positions) {
		return
	}
	a.focus, a.row = positions[next].value, positions[next].row
}

// View renders every section
func (a *Accordion) View() string {
	var b strings.Builder
	for i, s := range a.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		a.renderSection(&b, s)
	}
	return b.String()
}

func (a *Accordion) renderSection(b *strings.Builder, s Section) {
	focused := s.Value() == a.focus
	open := a.IsOpen(s.Value())
	b.WriteString(a.renderHeader(s, open, focused && a.row < 0))

	if !open {
		return
	}

	if st := a.states[s.Value()]; s.CanSearch() && st.search != nil {
		b.WriteString("\n")
		b.WriteString(indent(st.search.View(), 2))
	}

	for i, row := range s.Rows() {
		b.WriteString("\n")
		switch {
		case s.ItemCount() == 0:
			b.WriteString("    " + EmptyStyle.Render(row))
		case focused && i == a.row:
			b.WriteString("  " + SelectedStyle.Render("▸ "+row))
		default:
			b.WriteString("    " + NormalStyle.Render(row))
		}
	}

	if p := s.Pagination(); p != nil {
		b.WriteString("\n")
		b.WriteString("    " + renderPagination(*p))
	}
}

func (a *Accordion) renderHeader(s Section, open, focused bool) string {
	caret := "▸"
	if open {
		caret = "▾"
	}
	title := fmt.Sprintf("%s %s %s", caret, s.Icon(), s.Title())
	if focused {
		title = CursorStyle.Render("> ") + GetActiveHeaderStyle(true).Render(title)
	} else {
		title = "  " + GetActiveHeaderStyle(false).Render(title)
	}

	if !s.CanRefresh() {
		return title
	}

	control := DescriptionStyle.Render(refreshGlyph)
	if s.Loading() {
		control = a.spinner.View()
	}
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(control)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + control
}

// renderPagination draws "‹ 2/5 ›  47 items" with the arrows dimmed at the ends
func renderPagination(p pagination.Info) string {
	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.PerPage = p.PageSize
	if pg.PerPage <= 0 {
		pg.PerPage = pagination.DefaultPageSize
	}
	pg.SetTotalPages(p.Total)
	pg.Page = max(p.Page-1, 0)

	prev, next := DescriptionStyle.Render("‹"), DescriptionStyle.Render("›")
	if p.HasPrev() {
		prev = CursorStyle.Render("‹")
	}
	if p.HasNext() {
		next = CursorStyle.Render("›")
	}
	count := DescriptionStyle.Render(fmt.Sprintf("%d item%s", p.Total, pluralize(p.Total)))
	return fmt.Sprintf("%s %s %s  %s", prev, pg.View(), next, count)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
