package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/otto8-ai/otto-admin/pkg/fetch"
	"github.com/otto8-ai/otto-admin/pkg/models"
	"github.com/otto8-ai/otto-admin/pkg/providers"
)

const (
	SectionModelProviders = "model-providers"
	SectionOAuthApps      = "oauth-apps"
)

// ProviderService lists the model providers registered with the platform
type ProviderService interface {
	ListModelProviders(ctx context.Context) ([]models.ModelProvider, error)
}

// ProviderRow joins a catalog entry with the platform's view of it
type ProviderRow struct {
	Info       providers.ModelProviderInfo
	Registered bool
	Configured bool
	Missing    []string
}

// ProviderRows lists every catalog provider in display order, followed by
// platform providers the catalog does not know
func ProviderRows(registered []models.ModelProvider) []ProviderRow {
	byID := map[string]models.ModelProvider{}
	for _, p := range registered {
		byID[p.ID] = p
	}

	var rows []ProviderRow
	for _, p := range providers.AllModelProviders() {
		info := p.Info()
		row := ProviderRow{Info: info}
		if mp, ok := byID[info.ID]; ok {
			row.Registered, row.Configured = true, mp.Configured
			for _, envVar := range mp.MissingConfigurationParameters {
				row.Missing = append(row.Missing, p.LabelFor(envVar))
			}
			delete(byID, info.ID)
		}
		rows = append(rows, row)
	}
	for _, mp := range registered {
		if _, ok := byID[mp.ID]; !ok {
			continue
		}
		info := providers.UnknownModelProvider.Info()
		info.ID, info.Name = mp.ID, mp.Name
		rows = append(rows, ProviderRow{Info: info, Registered: true, Configured: mp.Configured})
		delete(byID, mp.ID)
	}
	return rows
}

func renderProviderRow(r ProviderRow) string {
	name := r.Info.Name
	if r.Info.Recommended {
		name += " ★"
	}
	var status string
	switch {
	case r.Configured:
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("configured")
	case len(r.Missing) > 0:
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(fmt.Sprintf("missing %d", len(r.Missing)))
	case r.Registered:
		status = DescriptionStyle.Render("not configured")
	default:
		status = DescriptionStyle.Render("not registered")
	}
	return fmt.Sprintf("%-16s %s", name, status)
}

// ProvidersModel lists model providers and the OAuth app types
type ProvidersModel struct {
	svc       ProviderService
	resource  *fetch.Resource[[]models.ModelProvider]
	accordion *Accordion
	keys      KeyMap
	help      help.Model
	clipboard func(string) error
	width     int
}

// NewProvidersModel creates the providers view
func NewProvidersModel(svc ProviderService, cache *fetch.Cache, timeout time.Duration) *ProvidersModel {
	if cache == nil {
		cache = fetch.NewCache(0, 0)
	}
	m := &ProvidersModel{
		svc:       svc,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		clipboard: clipboard.WriteAll,
	}
	m.resource = fetch.NewResource[[]models.ModelProvider](cache, "model-providers", svc.ListModelProviders)
	m.resource.SetTimeout(timeout)
	m.accordion = NewAccordion(m.keys)
	m.accordion.SetOpen(SectionModelProviders, true)
	m.syncSections()
	return m
}

func (m *ProvidersModel) Init() tea.Cmd {
	return tea.Batch(m.accordion.Init(), m.resource.Mutate())
}

func (m *ProvidersModel) SetSize(width, height int) {
	m.width = width
	m.help.Width = width
	m.accordion.SetWidth(width - 2)
}

func (m *ProvidersModel) CapturingInput() bool {
	return m.accordion.Searching()
}

func (m *ProvidersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case fetch.LoadedMsg:
		if m.resource.Handle(msg) && msg.Err != nil {
			cmd = statusCmd("✗ Failed to load model providers: " + msg.Err.Error())
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Copy) {
			if text, ok := m.accordion.FocusedCopyValue(); ok {
				write := m.clipboard
				cmd = func() tea.Msg {
					if err := write(text); err != nil {
						return StatusMsg("✗ Failed to copy: " + err.Error())
					}
					return StatusMsg(text + " → clipboard")
				}
			}
			break
		}
		cmd = m.accordion.Update(msg)
	default:
		cmd = m.accordion.Update(msg)
	}
	m.syncSections()
	return m, cmd
}

func (m *ProvidersModel) syncSections() {
	registered, _ := m.resource.Data()
	m.accordion.SetSections(
		NewListSection(SectionConfig[ProviderRow]{
			Value:      SectionModelProviders,
			Icon:       "◆",
			Title:      "Model Providers",
			Items:      ProviderRows(registered),
			IsLoading:  m.resource.IsLoading(),
			RenderItem: renderProviderRow,
			OnRefresh:  m.resource.Mutate,
			CopyValue:  func(r ProviderRow) string { return r.Info.ID },
		}),
		NewListSection(SectionConfig[providers.OAuthProvider]{
			Value: SectionOAuthApps,
			Icon:  "🔑",
			Title: "OAuth App Types",
			Items: providers.AllOAuthProviders(),
			RenderItem: func(p providers.OAuthProvider) string {
				return p.Icon() + " " + p.DisplayName()
			},
			CopyValue: func(p providers.OAuthProvider) string { return string(p) },
		}),
	)
}

func (m *ProvidersModel) View() string {
	title := NewViewTitle("Providers")
	return lipgloss.JoinVertical(lipgloss.Left,
		title.ViewWithAlignment(m.width),
		m.accordion.View(),
		m.help.View(m.keys),
	)
}
