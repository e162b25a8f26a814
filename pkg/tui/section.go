package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/otto8-ai/otto-admin/pkg/pagination"
)

// DefaultSkeletonRows is how many placeholder rows an unpaginated section
// shows while it loads
const DefaultSkeletonRows = pagination.DefaultPageSize

// SectionConfig describes one collapsible list section. Only Value, Title and
// RenderItem are required; every optional callback switches on the matching
// control when set.
type SectionConfig[T any] struct {
	Value     string
	Icon      string
	Title     string
	Items     []T
	IsLoading bool

	RenderItem     func(item T) string
	RenderSkeleton func(index int, renderItem func(T) string) string
	EmptyMessage   string

	OnRefresh    func() tea.Cmd
	Pagination   *pagination.Info
	OnPageChange func(page int) tea.Cmd
	OnSearch     func(text string) tea.Cmd

	// Row actions. Each receives the item under the cursor.
	OnSelect  func(item T) tea.Cmd
	OnDelete  func(item T) tea.Cmd
	CopyValue func(item T) string
}

// Section is the item-type-erased view of a ListSection the accordion works with
type Section interface {
	Value() string
	Icon() string
	Title() string
	Loading() bool
	Rows() []string
	ItemCount() int

	CanRefresh() bool
	Refresh() tea.Cmd
	CanSearch() bool
	Search(text string) tea.Cmd
	Pagination() *pagination.Info
	ChangePage(page int) tea.Cmd

	Select(index int) tea.Cmd
	Delete(index int) tea.Cmd
	Copy(index int) (string, bool)
}

// ListSection renders a SectionConfig. It holds no state of its own; the
// owner rebuilds it whenever the underlying data changes.
type ListSection[T any] struct {
	cfg SectionConfig[T]
}

var _ Section = (*ListSection[string])(nil)

// NewListSection creates a section from cfg
func NewListSection[T any](cfg SectionConfig[T]) *ListSection[T] {
	return &ListSection[T]{cfg: cfg}
}

func (s *ListSection[T]) Value() string  { return s.cfg.Value }
func (s *ListSection[T]) Icon() string   { return s.cfg.Icon }
func (s *ListSection[T]) Title() string  { return s.cfg.Title }
func (s *ListSection[T]) Loading() bool  { return s.cfg.IsLoading }
func (s *ListSection[T]) ItemCount() int { return len(s.cfg.Items) }

// EmptyMessage is the text shown when there is nothing to list
func (s *ListSection[T]) EmptyMessage() string {
	if s.cfg.EmptyMessage != "" {
		return s.cfg.EmptyMessage
	}
	return "No " + strings.ToLower(s.cfg.Title)
}

// Rows renders the list body. Real rows, skeleton rows and the empty row are
// mutually exclusive.
func (s *ListSection[T]) Rows() []string {
	if len(s.cfg.Items) > 0 {
		rows := make([]string, 0, len(s.cfg.Items))
		for _, item := range s.cfg.Items {
			rows = append(rows, s.cfg.RenderItem(item))
		}
		return rows
	}

	if s.cfg.IsLoading && s.cfg.RenderSkeleton != nil {
		n := s.skeletonCount()
		rows := make([]string, 0, n)
		for i := 0; i < n; i++ {
			rows = append(rows, s.cfg.RenderSkeleton(i, s.cfg.RenderItem))
		}
		return rows
	}

	return []string{s.EmptyMessage()}
}

func (s *ListSection[T]) skeletonCount() int {
	if s.cfg.Pagination != nil && s.cfg.Pagination.PageSize > 0 {
		return s.cfg.Pagination.PageSize
	}
	return DefaultSkeletonRows
}

func (s *ListSection[T]) CanRefresh() bool { return s.cfg.OnRefresh != nil }

// Refresh runs the refresh callback once
func (s *ListSection[T]) Refresh() tea.Cmd {
	if s.cfg.OnRefresh == nil {
		return nil
	}
	return s.cfg.OnRefresh()
}

func (s *ListSection[T]) CanSearch() bool { return s.cfg.OnSearch != nil }

// Search forwards text as typed
func (s *ListSection[T]) Search(text string) tea.Cmd {
	if s.cfg.OnSearch == nil {
		return nil
	}
	return s.cfg.OnSearch(text)
}

func (s *ListSection[T]) Pagination() *pagination.Info { return s.cfg.Pagination }

// ChangePage requests page. Requests for the current page or a page outside
// [1, TotalPages] are ignored.
func (s *ListSection[T]) ChangePage(page int) tea.Cmd {
	p := s.cfg.Pagination
	if p == nil || page == p.Page || !p.InBounds(page) {
		return nil
	}
	if s.cfg.OnPageChange == nil {
		return nil
	}
	return s.cfg.OnPageChange(page)
}

func (s *ListSection[T]) item(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(s.cfg.Items) {
		return zero, false
	}
	return s.cfg.Items[index], true
}

func (s *ListSection[T]) Select(index int) tea.Cmd {
	item, ok := s.item(index)
	if !ok || s.cfg.OnSelect == nil {
		return nil
	}
	return s.cfg.OnSelect(item)
}

func (s *ListSection[T]) Delete(index int) tea.Cmd {
	item, ok := s.item(index)
	if !ok || s.cfg.OnDelete == nil {
		return nil
	}
	return s.cfg.OnDelete(item)
}

func (s *ListSection[T]) Copy(index int) (string, bool) {
	item, ok := s.item(index)
	if !ok || s.cfg.CopyValue == nil {
		return "", false
	}
	return s.cfg.CopyValue(item), true
}
