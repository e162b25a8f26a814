package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/otto8-ai/otto-admin/internal/logger"
	"github.com/otto8-ai/otto-admin/pkg/api"
	"github.com/otto8-ai/otto-admin/pkg/fetch"
	"github.com/otto8-ai/otto-admin/pkg/models"
	"github.com/otto8-ai/otto-admin/pkg/pagination"
	"github.com/otto8-ai/otto-admin/pkg/providers"
)

// Section values
const (
	SectionFiles       = "files"
	SectionKnowledge   = "knowledge"
	SectionCredentials = "credentials"
	SectionTables      = "tables"
)

// ThreadService is the part of the platform API the thread panel uses
type ThreadService interface {
	GetThread(ctx context.Context, id string) (*models.Thread, error)
	GetEntity(ctx context.Context, thread *models.Thread) (models.Entity, error)
	ListThreadFiles(ctx context.Context, threadID string, opts api.ListOptions) (models.Page[models.File], error)
	ListThreadTables(ctx context.Context, threadID string, opts api.ListOptions) (models.Page[models.Table], error)
	ListThreadKnowledge(ctx context.Context, threadID string) ([]models.KnowledgeFile, error)
	ListThreadCredentials(ctx context.Context, threadID string) ([]models.Credential, error)
	DeleteThreadCredential(ctx context.Context, threadID, name string) error
	DownloadThreadFile(ctx context.Context, threadID, name, dir string) (string, error)
}

type threadLoadedMsg struct {
	thread *models.Thread
	entity models.Entity
	err    error
}

type downloadedMsg struct {
	name string
	path string
	err  error
}

type credentialDeletedMsg struct {
	name string
	err  error
}

// ThreadMetaOption customizes a ThreadMetaModel
type ThreadMetaOption func(*ThreadMetaModel)

// WithClipboard replaces the system clipboard
func WithClipboard(write func(string) error) ThreadMetaOption {
	return func(m *ThreadMetaModel) { m.clipboard = write }
}

// WithClock replaces time.Now for the created age
func WithClock(now func() time.Time) ThreadMetaOption {
	return func(m *ThreadMetaModel) { m.now = now }
}

// WithCache shares a fetch cache with other views
func WithCache(cache *fetch.Cache) ThreadMetaOption {
	return func(m *ThreadMetaModel) { m.cache = cache }
}

// ThreadMetaModel shows a thread's summary and its files, knowledge files,
// credentials and tables
type ThreadMetaModel struct {
	svc      ThreadService
	threadID string
	settings *models.Settings

	cache     *fetch.Cache
	clipboard func(string) error
	now       func() time.Time

	thread  *models.Thread
	entity  models.Entity
	loadErr error

	files       *fetch.Resource[models.Page[models.File]]
	fileStore   *pagination.State
	fileSearch  *pagination.Debouncer
	knowledge   *fetch.Resource[[]models.KnowledgeFile]
	credentials *fetch.Resource[[]models.Credential]
	tables      *fetch.Resource[models.Page[models.Table]]
	tableStore  *pagination.State

	accordion *Accordion
	confirm   *ConfirmationModel
	keys      KeyMap
	help      help.Model

	width  int
	height int
}

// NewThreadMetaModel creates the panel for threadID. Nothing is fetched until Init.
func NewThreadMetaModel(svc ThreadService, threadID string, settings *models.Settings, opts ...ThreadMetaOption) *ThreadMetaModel {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	m := &ThreadMetaModel{
		svc:       svc,
		threadID:  threadID,
		settings:  settings,
		clipboard: clipboard.WriteAll,
		now:       time.Now,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		confirm:   NewConfirmation(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = fetch.NewCache(settings.UI.CacheSize, settings.UI.CacheTTL)
	}

	m.fileStore = pagination.New(settings.UI.PageSize)
	m.tableStore = pagination.New(settings.UI.PageSize)
	m.fileSearch = pagination.NewDebouncer(SectionFiles, settings.UI.SearchDebounce)

	m.files = fetch.NewResource(m.cache, m.filesKey(), m.fetchFiles())
	m.tables = fetch.NewResource(m.cache, m.tablesKey(), m.fetchTables())
	m.knowledge = fetch.NewResource[[]models.KnowledgeFile](m.cache, "threads/"+threadID+"/knowledge-files",
		func(ctx context.Context) ([]models.KnowledgeFile, error) {
			return svc.ListThreadKnowledge(ctx, threadID)
		})
	m.credentials = fetch.NewResource[[]models.Credential](m.cache, "threads/"+threadID+"/credentials",
		func(ctx context.Context) ([]models.Credential, error) {
			return svc.ListThreadCredentials(ctx, threadID)
		})
	for _, timeout := range []func(time.Duration){m.files.SetTimeout, m.tables.SetTimeout, m.knowledge.SetTimeout, m.credentials.SetTimeout} {
		timeout(settings.API.Timeout)
	}

	m.accordion = NewAccordion(m.keys)
	m.syncSections()
	return m
}

func (m *ThreadMetaModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadThread(),
		m.accordion.Init(),
		m.files.Mutate(),
		m.knowledge.Mutate(),
		m.credentials.Mutate(),
		m.tables.Mutate(),
	)
}

// SetSize updates the panel dimensions
func (m *ThreadMetaModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.accordion.SetWidth(width - 2)
}

// CapturingInput reports whether keys are going to a text input or a prompt
func (m *ThreadMetaModel) CapturingInput() bool {
	return m.accordion.Searching() || m.confirm.Active()
}

// Accordion exposes the section layout
func (m *ThreadMetaModel) Accordion() *Accordion {
	return m.accordion
}

func (m *ThreadMetaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case threadLoadedMsg:
		m.thread, m.entity, m.loadErr = msg.thread, msg.entity, msg.err
		if msg.err != nil {
			cmd = statusCmd("✗ Failed to load thread: " + msg.err.Error())
		}

	case fetch.LoadedMsg:
		cmd = m.handleLoaded(msg)

	case pagination.DebouncedMsg:
		if m.fileSearch.Accept(msg) && m.fileStore.SetSearch(msg.Text) {
			cmd = m.reloadFiles()
		}

	case downloadedMsg:
		if msg.err != nil {
			cmd = statusCmd("✗ Download failed: " + msg.err.Error())
		} else {
			cmd = statusCmd(fmt.Sprintf("✓ %s → %s", msg.name, msg.path))
		}

	case credentialDeletedMsg:
		m.confirm.Done()
		if msg.err != nil {
			cmd = statusCmd("✗ Failed to delete credential: " + msg.err.Error())
		} else {
			cmd = tea.Batch(statusCmd("✓ Deleted credential "+msg.name), m.credentials.Mutate())
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	default:
		cmd = m.accordion.Update(msg)
	}

	m.syncSections()
	return m, cmd
}

func (m *ThreadMetaModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}
	if !m.accordion.Searching() && key.Matches(msg, m.keys.Copy) {
		return m.copyFocused()
	}
	cmd := m.accordion.Update(msg)
	return cmd
}

func (m *ThreadMetaModel) handleLoaded(msg fetch.LoadedMsg) tea.Cmd {
	var reload tea.Cmd
	switch {
	case m.files.Handle(msg):
		if page, ok := m.files.Data(); ok && msg.Err == nil {
			reload = m.applyTotal(m.fileStore, page.Total, m.reloadFiles)
		}
	case m.tables.Handle(msg):
		if page, ok := m.tables.Data(); ok && msg.Err == nil {
			reload = m.applyTotal(m.tableStore, page.Total, m.reloadTables)
		}
	case m.knowledge.Handle(msg), m.credentials.Handle(msg):
	default:
		return nil
	}

	if msg.Err != nil {
		return statusCmd("✗ Failed to load " + msg.Key + ": " + msg.Err.Error())
	}
	return reload
}

// applyTotal records the reported total. When the current page no longer
// exists the store moves back and the new page is loaded.
func (m *ThreadMetaModel) applyTotal(store *pagination.State, total int, reload func() tea.Cmd) tea.Cmd {
	page := store.Page()
	store.UpdateTotal(total)
	if store.Page() != page {
		return reload()
	}
	return nil
}

func (m *ThreadMetaModel) filesKey() string {
	p := m.fileStore.Params()
	return fmt.Sprintf("threads/%s/files?offset=%d&limit=%d&search=%s", m.threadID, p.Offset, p.Limit, m.fileStore.Search())
}

func (m *ThreadMetaModel) tablesKey() string {
	p := m.tableStore.Params()
	return fmt.Sprintf("threads/%s/tables?offset=%d&limit=%d&search=%s", m.threadID, p.Offset, p.Limit, m.tableStore.Search())
}

func (m *ThreadMetaModel) fetchFiles() fetch.Fetcher[models.Page[models.File]] {
	opts := listOptions(m.fileStore)
	return func(ctx context.Context) (models.Page[models.File], error) {
		return m.svc.ListThreadFiles(ctx, m.threadID, opts)
	}
}

func (m *ThreadMetaModel) fetchTables() fetch.Fetcher[models.Page[models.Table]] {
	opts := listOptions(m.tableStore)
	return func(ctx context.Context) (models.Page[models.Table], error) {
		return m.svc.ListThreadTables(ctx, m.threadID, opts)
	}
}

func listOptions(store *pagination.State) api.ListOptions {
	p := store.Params()
	return api.ListOptions{Offset: p.Offset, Limit: p.Limit, Search: store.Search()}
}

func (m *ThreadMetaModel) reloadFiles() tea.Cmd {
	m.files.SetKey(m.filesKey(), m.fetchFiles())
	return m.files.Mutate()
}

func (m *ThreadMetaModel) reloadTables() tea.Cmd {
	m.tables.SetKey(m.tablesKey(), m.fetchTables())
	return m.tables.Mutate()
}

func (m *ThreadMetaModel) setFilesPage(page int) tea.Cmd {
	if !m.fileStore.SetPage(page) {
		return nil
	}
	return m.reloadFiles()
}

func (m *ThreadMetaModel) setTablesPage(page int) tea.Cmd {
	if !m.tableStore.SetPage(page) {
		return nil
	}
	return m.reloadTables()
}

func (m *ThreadMetaModel) loadThread() tea.Cmd {
	svc, id, timeout := m.svc, m.threadID, m.settings.API.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		thread, err := svc.GetThread(ctx, id)
		if err != nil {
			return threadLoadedMsg{err: err}
		}
		entity, err := svc.GetEntity(ctx, thread)
		if err != nil {
			// The thread is still worth showing without its owner
			logger.Warn("Failed to load thread owner", "thread", id, "error", err)
		}
		return threadLoadedMsg{thread: thread, entity: entity}
	}
}

func (m *ThreadMetaModel) download(f models.File) tea.Cmd {
	svc, id, dir, timeout := m.svc, m.threadID, m.settings.Download.Dir, m.settings.API.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		path, err := svc.DownloadThreadFile(ctx, id, f.Name, dir)
		return downloadedMsg{name: f.Name, path: path, err: err}
	}
}

func (m *ThreadMetaModel) confirmDeleteCredential(c models.Credential) tea.Cmd {
	m.confirm.InterceptAsync(ConfirmationConfig{
		Title:       "Delete Credential?",
		Message:     "You will need to re-authenticate to use any tools that require this credential.",
		Destructive: true,
		Type:        ConfirmTypeDialog,
		YesLabel:    "Delete",
		NoLabel:     "Cancel",
		BusyLabel:   "Deleting " + c.Name + "…",
	}, func() tea.Cmd {
		return m.deleteCredential(c.Name)
	})
	return nil
}

func (m *ThreadMetaModel) deleteCredential(name string) tea.Cmd {
	svc, id, timeout := m.svc, m.threadID, m.settings.API.Timeout
	cache, key := m.cache, m.credentials.Key()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := svc.DeleteThreadCredential(ctx, id, name)
		if err == nil {
			cache.Invalidate(key)
		}
		return credentialDeletedMsg{name: name, err: err}
	}
}

func (m *ThreadMetaModel) copyFocused() tea.Cmd {
	text, ok := m.accordion.FocusedCopyValue()
	if !ok {
		text = m.threadID
	}
	write := m.clipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return StatusMsg("✗ Failed to copy: " + err.Error())
		}
		return StatusMsg(text + " → clipboard")
	}
}

func statusCmd(s string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(s) }
}

// rowWidth is the room a row has for its text
func (m *ThreadMetaModel) rowWidth() int {
	return m.width - 10
}

func (m *ThreadMetaModel) syncSections() {
	m.accordion.SetSections(m.sections()...)
}

func (m *ThreadMetaModel) sections() []Section {
	filePage, _ := m.files.Data()
	tablePage, _ := m.tables.Data()
	knowledge, _ := m.knowledge.Data()
	credentials, _ := m.credentials.Data()
	fileInfo, tableInfo := m.fileStore.Info(), m.tableStore.Info()

	return []Section{
		NewListSection(SectionConfig[models.File]{
			Value:     SectionFiles,
			Icon:      "🗀",
			Title:     "Files",
			Items:     filePage.Items,
			IsLoading: m.files.IsLoading(),
			RenderItem: func(f models.File) string {
				return "⤓ " + truncateName(f.Name, m.rowWidth())
			},
			RenderSkeleton: func(index int, _ func(models.File) string) string {
				return SkeletonStyle.Render("⤓ " + skeletonBar(index))
			},
			OnRefresh:    m.files.Mutate,
			Pagination:   &fileInfo,
			OnPageChange: m.setFilesPage,
			OnSearch:     m.fileSearch.Trigger,
			OnSelect:     m.download,
			CopyValue:    func(f models.File) string { return f.Name },
		}),
		NewListSection(SectionConfig[models.KnowledgeFile]{
			Value:     SectionKnowledge,
			Icon:      "🗎",
			Title:     "Knowledge Files",
			Items:     knowledge,
			IsLoading: m.knowledge.IsLoading(),
			RenderItem: func(f models.KnowledgeFile) string {
				return truncateName(f.FileName, m.rowWidth())
			},
			OnRefresh: m.knowledge.Mutate,
			CopyValue: func(f models.KnowledgeFile) string { return f.FileName },
		}),
		NewListSection(SectionConfig[models.Credential]{
			Value:      SectionCredentials,
			Icon:       providers.OAuthCustom.Icon(),
			Title:      "Credentials",
			Items:      credentials,
			IsLoading:  m.credentials.IsLoading(),
			RenderItem: renderCredential,
			OnRefresh:  m.credentials.Mutate,
			OnDelete:   m.confirmDeleteCredential,
			CopyValue:  func(c models.Credential) string { return c.Name },
		}),
		NewListSection(SectionConfig[models.Table]{
			Value:      SectionTables,
			Icon:       "▦",
			Title:      "Tables",
			Items:      tablePage.Items,
			IsLoading:  m.tables.IsLoading(),
			RenderItem: func(t models.Table) string { return t.Name },
			RenderSkeleton: func(index int, _ func(models.Table) string) string {
				return SkeletonStyle.Render(skeletonBar(index))
			},
			OnRefresh:    m.tables.Mutate,
			Pagination:   &tableInfo,
			OnPageChange: m.setTablesPage,
			CopyValue:    func(t models.Table) string { return t.Name },
		}),
	}
}

func renderCredential(c models.Credential) string {
	if len(c.EnvVars) == 0 {
		return c.Name
	}
	return c.Name + "  " + DescriptionStyle.Render(strings.Join(c.EnvVars, ", "))
}

// skeletonBar varies the placeholder length so the rows do not look like a block
func skeletonBar(index int) string {
	return strings.Repeat("░", 12+(index*7)%17)
}

func (m *ThreadMetaModel) View() string {
	title := NewViewTitle("Thread " + m.threadID)
	parts := []string{title.ViewWithAlignment(m.width)}

	var summary string
	switch {
	case m.loadErr != nil:
		summary = ErrorStyle.Render("Failed to load thread: " + m.loadErr.Error())
	case m.thread == nil:
		summary = DescriptionStyle.Render("Loading thread…")
	default:
		summary = renderSummary(SummaryRows(m.thread, m.entity, m.now()), m.thread.State, m.width)
	}
	parts = append(parts, summary, m.accordion.View(), m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.confirm.Active() {
		offset := ViewTitleHeight() + lipgloss.Height(summary)
		dialog := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.confirm.View())
		content = overlayViews(content, strings.Repeat("\n", offset)+dialog)
	}
	return content
}
