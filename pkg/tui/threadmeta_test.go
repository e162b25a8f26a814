package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto8-ai/otto-admin/pkg/api"
	"github.com/otto8-ai/otto-admin/pkg/models"
)

type fakeThreads struct {
	mu           sync.Mutex
	thread       *models.Thread
	entity       models.Entity
	files        []models.File
	tables       []models.Table
	knowledge    []models.KnowledgeFile
	credentials  []models.Credential
	knowledgeErr error

	fileCalls  []api.ListOptions
	deleted    []string
	downloaded []string
}

func newFakeThreads() *fakeThreads {
	return &fakeThreads{
		thread: &models.Thread{
			Metadata: models.Metadata{ID: "t1", Created: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)},
			AgentID:  "a1helper",
			State:    models.RunStateWaiting,
		},
		entity: models.Entity{ID: "a1helper", Name: "Helper"},
		files: []models.File{
			{Name: "report.csv"}, {Name: "notes.md"}, {Name: "report-2.csv"}, {Name: "image.png"}, {Name: "log.txt"},
		},
		tables:      []models.Table{{Name: "users"}, {Name: "orders"}, {Name: "invoices"}},
		knowledge:   []models.KnowledgeFile{{ID: "k1", FileName: "handbook.pdf"}},
		credentials: []models.Credential{{Name: "github", EnvVars: []string{"GH_TOKEN"}}, {Name: "slack"}},
	}
}

func page[T any](items []T, opts api.ListOptions, name func(T) string) models.Page[T] {
	var matched []T
	for _, item := range items {
		if opts.Search == "" || strings.Contains(name(item), opts.Search) {
			matched = append(matched, item)
		}
	}
	start := min(opts.Offset, len(matched))
	end := min(start+opts.Limit, len(matched))
	return models.Page[T]{Items: matched[start:end], Total: len(matched)}
}

func (f *fakeThreads) GetThread(ctx context.Context, id string) (*models.Thread, error) {
	return f.thread, nil
}

func (f *fakeThreads) GetEntity(ctx context.Context, thread *models.Thread) (models.Entity, error) {
	return f.entity, nil
}

func (f *fakeThreads) ListThreadFiles(ctx context.Context, threadID string, opts api.ListOptions) (models.Page[models.File], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fileCalls = append(f.fileCalls, opts)
	return page(f.files, opts, func(x models.File) string { return x.Name }), nil
}

func (f *fakeThreads) ListThreadTables(ctx context.Context, threadID string, opts api.ListOptions) (models.Page[models.Table], error) {
	return page(f.tables, opts, func(x models.Table) string { return x.Name }), nil
}

func (f *fakeThreads) ListThreadKnowledge(ctx context.Context, threadID string) ([]models.KnowledgeFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.knowledge, f.knowledgeErr
}

func (f *fakeThreads) ListThreadCredentials(ctx context.Context, threadID string) ([]models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Credential(nil), f.credentials...), nil
}

func (f *fakeThreads) DeleteThreadCredential(ctx context.Context, threadID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	var kept []models.Credential
	for _, c := range f.credentials {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	f.credentials = kept
	return nil
}

func (f *fakeThreads) DownloadThreadFile(ctx context.Context, threadID, name, dir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloaded = append(f.downloaded, name)
	return filepath.Join(dir, name), nil
}

// drive runs cmd and every command that follows from it, feeding messages back
// into m. Spinner ticks are dropped so the loop ends; status messages are
// returned.
func drive(t *testing.T, m tea.Model, cmd tea.Cmd) []string {
	t.Helper()
	var statuses []string
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case StatusMsg:
			statuses = append(statuses, string(msg))
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
	return statuses
}

func testSettings(t *testing.T) *models.Settings {
	s := models.DefaultSettings()
	s.UI.PageSize = 2
	s.UI.SearchDebounce = time.Millisecond
	s.Download.Dir = t.TempDir()
	return s
}

func newLoadedPanel(t *testing.T, svc *fakeThreads, opts ...ThreadMetaOption) *ThreadMetaModel {
	t.Helper()
	m := NewThreadMetaModel(svc, "t1", testSettings(t), opts...)
	m.SetSize(100, 40)
	drive(t, m, m.Init())
	return m
}

func sectionByValue(t *testing.T, m *ThreadMetaModel, value string) Section {
	t.Helper()
	for _, s := range m.sections() {
		if s.Value() == value {
			return s
		}
	}
	t.Fatalf("no section %q", value)
	return nil
}

func press(t *testing.T, m *ThreadMetaModel, keys ...tea.KeyMsg) []string {
	t.Helper()
	var statuses []string
	for _, k := range keys {
		_, cmd := m.Update(k)
		statuses = append(statuses, drive(t, m, cmd)...)
	}
	return statuses
}

func TestThreadMetaLoadsEverything(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc, WithClock(func() time.Time {
		return time.Date(2024, 10, 1, 14, 0, 0, 0, time.UTC)
	}))

	require.NotNil(t, m.thread)
	assert.Equal(t, "Helper", m.entity.Name)

	files := sectionByValue(t, m, SectionFiles)
	assert.Equal(t, 2, files.ItemCount())
	assert.False(t, files.Loading())
	assert.Equal(t, 5, files.Pagination().Total)
	assert.Equal(t, 3, files.Pagination().TotalPages())

	assert.Equal(t, 1, sectionByValue(t, m, SectionKnowledge).ItemCount())
	assert.Equal(t, 2, sectionByValue(t, m, SectionCredentials).ItemCount())
	assert.Equal(t, 2, sectionByValue(t, m, SectionTables).ItemCount())
	assert.Equal(t, 3, sectionByValue(t, m, SectionTables).Pagination().Total)

	view := m.View()
	assert.Contains(t, view, "2 hours ago")
	assert.Contains(t, view, "Helper")
	assert.Contains(t, view, "Knowledge Files")
	assert.Contains(t, view, "Credentials")
}

func TestThreadMetaSkeletonsWhileLoading(t *testing.T) {
	m := NewThreadMetaModel(newFakeThreads(), "t1", testSettings(t))
	m.Init() // starts the loads without delivering them
	m.syncSections()

	files := sectionByValue(t, m, SectionFiles)
	assert.True(t, files.Loading())
	assert.Len(t, files.Rows(), 2, "one skeleton row per page slot")

	knowledge := sectionByValue(t, m, SectionKnowledge)
	assert.Equal(t, []string{"No knowledge files"}, knowledge.Rows(), "no skeletons without a skeleton renderer")
}

func TestThreadMetaPaging(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc)

	press(t, m, runeKey("l"))
	files := sectionByValue(t, m, SectionFiles)
	assert.Equal(t, 2, files.Pagination().Page)
	assert.Equal(t, api.ListOptions{Offset: 2, Limit: 2}, svc.fileCalls[len(svc.fileCalls)-1])

	press(t, m, runeKey("l"), runeKey("l"), runeKey("l"))
	files = sectionByValue(t, m, SectionFiles)
	assert.Equal(t, 3, files.Pagination().Page, "never past the last page")
	assert.Equal(t, 1, files.ItemCount())

	press(t, m, runeKey("h"))
	assert.Equal(t, 2, sectionByValue(t, m, SectionFiles).Pagination().Page)
}

func TestThreadMetaSearchIsDebounced(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc)
	press(t, m, runeKey("l")) // page 2

	_, cmd := m.Update(runeKey("/"))
	drive(t, m, cmd)
	require.True(t, m.CapturingInput())

	// Type without delivering the debounce ticks, then deliver them all
	var cmds []tea.Cmd
	for _, r := range "report" {
		_, cmd := m.Update(runeKey(string(r)))
		cmds = append(cmds, cmd)
	}
	drive(t, m, tea.Batch(cmds...))

	var searches []api.ListOptions
	for _, call := range svc.fileCalls {
		if call.Search != "" {
			searches = append(searches, call)
		}
	}
	require.Len(t, searches, 1, "only the last keystroke's search is applied")
	assert.Equal(t, api.ListOptions{Offset: 0, Limit: 2, Search: "report"}, searches[0], "a new search starts on page 1")

	files := sectionByValue(t, m, SectionFiles)
	assert.Equal(t, 2, files.Pagination().Total)
	assert.Equal(t, 1, files.Pagination().Page)
}

func TestThreadMetaRefreshDoesNotToggle(t *testing.T) {
	m := newLoadedPanel(t, newFakeThreads())

	_, cmd := m.Update(runeKey("r"))
	assert.True(t, sectionByValue(t, m, SectionFiles).Loading())
	assert.False(t, m.Accordion().IsOpen(SectionFiles))

	drive(t, m, cmd)
	assert.False(t, sectionByValue(t, m, SectionFiles).Loading())
	assert.False(t, m.Accordion().IsOpen(SectionFiles))
}

func TestThreadMetaLoadErrorKeepsData(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc)

	svc.mu.Lock()
	svc.knowledgeErr = errors.New("boom")
	svc.mu.Unlock()

	press(t, m, keyDown) // knowledge header
	statuses := press(t, m, runeKey("r"))

	require.Len(t, statuses, 1)
	assert.Contains(t, statuses[0], "boom")
	assert.Equal(t, 1, sectionByValue(t, m, SectionKnowledge).ItemCount())
}

func TestThreadMetaDownload(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc)

	statuses := press(t, m, keyEnter, keyDown, keyEnter)
	assert.Equal(t, []string{"report.csv"}, svc.downloaded)
	require.Len(t, statuses, 1)
	assert.Contains(t, statuses[0], "report.csv")
}

func TestThreadMetaDeleteCredential(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc)

	// files, knowledge, credentials header; open; first credential
	press(t, m, keyDown, keyDown, keyEnter, keyDown, runeKey("d"))
	require.True(t, m.confirm.Active())
	assert.True(t, m.CapturingInput())
	assert.Contains(t, m.View(), "Delete Credential?")
	assert.Empty(t, svc.deleted, "nothing is deleted before confirmation")

	_, cmd := m.Update(runeKey("y"))
	assert.True(t, m.confirm.Busy())
	statuses := drive(t, m, cmd)

	assert.Equal(t, []string{"github"}, svc.deleted)
	assert.False(t, m.confirm.Active())
	assert.Contains(t, statuses, "✓ Deleted credential github")
	assert.Equal(t, 1, sectionByValue(t, m, SectionCredentials).ItemCount(), "the list reloads after a delete")
}

func TestThreadMetaDeleteCredentialCancelled(t *testing.T) {
	svc := newFakeThreads()
	m := newLoadedPanel(t, svc)

	press(t, m, keyDown, keyDown, keyEnter, keyDown, runeKey("d"), runeKey("n"))
	assert.False(t, m.confirm.Active())
	assert.Empty(t, svc.deleted)
	assert.Equal(t, 2, sectionByValue(t, m, SectionCredentials).ItemCount())
}

func TestThreadMetaCopy(t *testing.T) {
	var copied []string
	m := newLoadedPanel(t, newFakeThreads(), WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))

	statuses := press(t, m, runeKey("c"))
	assert.Equal(t, []string{"t1"}, copied, "the thread id when no row is focused")
	assert.Equal(t, []string{"t1 → clipboard"}, statuses)

	press(t, m, keyDown, keyDown, keyDown, keyEnter, keyDown, runeKey("c"))
	assert.Equal(t, []string{"t1", "users"}, copied)
}

func TestThreadMetaCopyFailure(t *testing.T) {
	m := newLoadedPanel(t, newFakeThreads(), WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))

	statuses := press(t, m, runeKey("c"))
	require.Len(t, statuses, 1)
	assert.Contains(t, statuses[0], "no clipboard")
}
