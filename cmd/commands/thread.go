package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/otto8-ai/otto-admin/internal/cli"
	"github.com/otto8-ai/otto-admin/internal/logger"
	"github.com/otto8-ai/otto-admin/pkg/fetch"
	"github.com/otto8-ai/otto-admin/pkg/tui"
)

// NewThreadCommand creates the command that opens the interactive thread panel
func NewThreadCommand(cc *cli.CommandContext, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "thread <id>",
		Short: "Open the interactive panel for a thread",
		Long: `Open the thread panel: a summary of the thread followed by its files,
knowledge files, credentials and tables. Press tab for the providers view.

Keys:
  enter/space  open a section, or act on the selected row
  r            refresh the focused section
  /            search files
  ←/→          change page
  d            delete the selected credential
  c            copy the selected row
  q            quit

Examples:
  otto-admin thread t1abc
  otto-admin thread t1abc --url https://otto.example.com/api --log-file /tmp/otto.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID := args[0]
			if err := cli.ValidateThreadID(threadID); err != nil {
				return err
			}

			settings, err := cc.LoadSettings()
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			logger.Discard(settings.Log.File)
			logger.Debug("Opening thread panel", "thread", threadID, "url", client.BaseURL())

			cache := fetch.NewCache(settings.UI.CacheSize, settings.UI.CacheTTL)
			panel := tui.NewThreadMetaModel(client, threadID, settings, tui.WithCache(cache))
			providers := tui.NewProvidersModel(client, cache, settings.API.Timeout)

			p := tea.NewProgram(tui.NewApp(panel, providers, version),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to start the terminal user interface: %w", err)
			}
			return nil
		},
	}
}
