package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sessionState int

const (
	threadMetaView sessionState = iota
	providersView
)

// statusDuration is how long a StatusMsg stays in the status bar
const statusDuration = 4 * time.Second

// view is what App needs from each screen
type view interface {
	tea.Model
	SetSize(width, height int)
	CapturingInput() bool
}

type App struct {
	state     sessionState
	thread    *ThreadMetaModel
	providers *ProvidersModel
	keys      KeyMap
	version   string
	width     int
	height    int
	statusMsg string
	statusID  int
}

// NewApp creates the program model. providers may be nil, which disables
// the providers screen.
func NewApp(thread *ThreadMetaModel, providers *ProvidersModel, version string) *App {
	return &App{
		state:     threadMetaView,
		thread:    thread,
		providers: providers,
		keys:      DefaultKeyMap(),
		version:   version,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.thread.Init()}
	if a.providers != nil {
		cmds = append(cmds, a.providers.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) active() view {
	if a.state == providersView && a.providers != nil {
		return a.providers
	}
	return a.thread
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.thread.SetSize(msg.Width, a.contentHeight())
		if a.providers != nil {
			a.providers.SetSize(msg.Width, a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if !a.active().CapturingInput() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.SwitchTo) && a.providers != nil:
				if a.state == threadMetaView {
					a.state = providersView
				} else {
					a.state = threadMetaView
				}
				return a, nil
			}
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusID++
		id := a.statusID
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{id: id}
		})

	case clearStatusMsg:
		if msg.id == a.statusID {
			a.statusMsg = ""
		}
		return a, nil
	}

	// Keys go to the screen on display; everything else reaches both
	// screens because their loads and spinners run in the background.
	if _, ok := msg.(tea.KeyMsg); ok {
		_, cmd := a.active().Update(msg)
		return a, cmd
	}
	_, cmd := a.thread.Update(msg)
	cmds := []tea.Cmd{cmd}
	if a.providers != nil {
		_, cmd = a.providers.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) contentHeight() int {
	return a.height - headerHeight - 1
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	title := "Thread"
	if a.state == providersView {
		title = "Providers"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(a.width, title, a.version),
		a.active().View(),
	)

	if a.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
		content = lipgloss.JoinVertical(lipgloss.Left, content, statusStyle.Render(a.statusMsg))
	}

	return content
}

// StatusMsg is shown in the status bar for a few seconds
type StatusMsg string

type clearStatusMsg struct {
	id int
}
