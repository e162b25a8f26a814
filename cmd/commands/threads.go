package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/otto8-ai/otto-admin/internal/cli"
	"github.com/otto8-ai/otto-admin/pkg/api"
	"github.com/otto8-ai/otto-admin/pkg/models"
	"github.com/otto8-ai/otto-admin/pkg/pagination"
	"github.com/otto8-ai/otto-admin/pkg/tui"
)

// PageResult is the structured output of a paginated listing
type PageResult[T any] struct {
	Items      []T    `json:"items" yaml:"items"`
	Page       int    `json:"page" yaml:"page"`
	PageSize   int    `json:"pageSize" yaml:"page_size"`
	Total      int    `json:"total" yaml:"total"`
	TotalPages int    `json:"totalPages" yaml:"total_pages"`
	Search     string `json:"search,omitempty" yaml:"search,omitempty"`
}

// ThreadResult is the structured output of threads show
type ThreadResult struct {
	Thread *models.Thread `json:"thread" yaml:"thread"`
	Owner  *models.Entity `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// NewThreadsCommand creates the threads command group
func NewThreadsCommand(cc *cli.CommandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "threads",
		Aliases: []string{"t"},
		Short:   "Print thread metadata",
		Long: `Print a thread's summary and the lists shown in the thread panel.

Examples:
  # Summary of a thread
  otto-admin threads show t1abc

  # Second page of workspace files matching "report", as JSON
  otto-admin threads files t1abc --page 2 --search report -o json

  # Remove a credential without prompting
  otto-admin threads delete-credential t1abc github --force`,
	}

	cmd.AddCommand(
		newThreadShowCommand(cc),
		newThreadFilesCommand(cc),
		newThreadTablesCommand(cc),
		newThreadKnowledgeCommand(cc),
		newThreadCredentialsCommand(cc),
		newThreadDeleteCredentialCommand(cc),
		newThreadDownloadCommand(cc),
	)
	return cmd
}

func threadArg(args []string) (string, error) {
	id := strings.TrimSpace(args[0])
	return id, cli.ValidateThreadID(id)
}

func newThreadShowCommand(cc *cli.CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the summary of a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			thread, err := client.GetThread(cmd.Context(), threadID)
			if err != nil {
				return fmt.Errorf("failed to load thread: %w", err)
			}
			result := ThreadResult{Thread: thread}
			var owner models.Entity
			if thread.EntityID() != "" {
				if owner, err = client.GetEntity(cmd.Context(), thread); err != nil {
					cli.PrintWarning("Could not load the thread's owner: %v", err)
				} else {
					result.Owner = &owner
				}
			}

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, result)
			}
			printThreadSummary(cmd.OutOrStdout(), thread, owner)
			return nil
		},
	}
}

func printThreadSummary(w io.Writer, thread *models.Thread, owner models.Entity) {
	fmt.Fprintf(w, "Thread: %s\n", thread.ID)
	if thread.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", thread.Description)
	}
	fmt.Fprintln(w)

	table := cli.NewTableFormatter(w)
	for _, row := range tui.SummaryRows(thread, owner, time.Now()) {
		value := row.Value
		if row.Link != "" {
			value += "  (" + row.Link + ")"
		}
		table.Row(row.Label+":", value)
	}
	table.Flush()
}

// listFlags are the pagination flags of the paginated listings
type listFlags struct {
	page     int
	pageSize int
	search   string
}

func (f *listFlags) register(cmd *cobra.Command, searchable bool) {
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page to show (1-based)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Items per page (default from config)")
	if searchable {
		cmd.Flags().StringVarP(&f.search, "search", "s", "", "Only show items whose name contains this text")
	}
}

func (f *listFlags) options(settings *models.Settings) (api.ListOptions, error) {
	size := f.pageSize
	if size == 0 {
		size = settings.UI.PageSize
	}
	if err := cli.ValidatePage(f.page, size); err != nil {
		return api.ListOptions{}, err
	}
	return api.ListOptions{
		Offset: (f.page - 1) * size,
		Limit:  size,
		Search: strings.TrimSpace(f.search),
	}, nil
}

func newPageResult[T any](page models.Page[T], opts api.ListOptions) PageResult[T] {
	info := pagination.Info{Page: opts.Offset/opts.Limit + 1, PageSize: opts.Limit, Total: page.Total}
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		Page:       info.Page,
		PageSize:   info.PageSize,
		Total:      info.Total,
		TotalPages: info.TotalPages(),
		Search:     opts.Search,
	}
}

func printPageFooter[T any](w io.Writer, r PageResult[T], noun string) {
	footer := fmt.Sprintf("Page %d/%d, %d %s", r.Page, r.TotalPages, r.Total, noun)
	if r.Search != "" {
		footer += fmt.Sprintf(" matching %q", r.Search)
	}
	fmt.Fprintln(w, footer)
	if r.Page > r.TotalPages {
		fmt.Fprintf(w, "Page %d is past the end; the last page is %d\n", r.Page, r.TotalPages)
	}
}

func newThreadFilesCommand(cc *cli.CommandContext) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "files <id>",
		Short: "List the files in a thread's workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			settings, err := cc.LoadSettings()
			if err != nil {
				return err
			}
			opts, err := flags.options(settings)
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			page, err := client.ListThreadFiles(cmd.Context(), threadID, opts)
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}
			result := newPageResult(page, opts)

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, result)
			}
			w := cmd.OutOrStdout()
			if len(result.Items) == 0 {
				fmt.Fprintln(w, "No files")
			} else {
				table := cli.NewTableFormatter(w)
				table.Header("NAME")
				for _, f := range result.Items {
					table.Row(f.Name)
				}
				table.Flush()
			}
			printPageFooter(w, result, pluralNoun(result.Total, "file"))
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newThreadTablesCommand(cc *cli.CommandContext) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "tables <id>",
		Short: "List the tables in a thread's database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			settings, err := cc.LoadSettings()
			if err != nil {
				return err
			}
			opts, err := flags.options(settings)
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			page, err := client.ListThreadTables(cmd.Context(), threadID, opts)
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}
			result := newPageResult(page, opts)

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, result)
			}
			w := cmd.OutOrStdout()
			if len(result.Items) == 0 {
				fmt.Fprintln(w, "No tables")
			} else {
				table := cli.NewTableFormatter(w)
				table.Header("NAME")
				for _, t := range result.Items {
					table.Row(t.Name)
				}
				table.Flush()
			}
			printPageFooter(w, result, pluralNoun(result.Total, "table"))
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newThreadKnowledgeCommand(cc *cli.CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "knowledge <id>",
		Aliases: []string{"knowledge-files"},
		Short:   "List the knowledge files attached to a thread",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			items, err := client.ListThreadKnowledge(cmd.Context(), threadID)
			if err != nil {
				return fmt.Errorf("failed to list knowledge files: %w", err)
			}
			if items == nil {
				items = []models.KnowledgeFile{}
			}

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, items)
			}
			w := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(w, "No knowledge files")
				return nil
			}
			table := cli.NewTableFormatter(w)
			table.Header("ID", "FILE", "STATUS")
			for _, k := range items {
				table.Row(k.ID, k.FileName, cli.ValueOrDash(k.IngestionStatus))
			}
			table.Flush()
			return nil
		},
	}
}

func newThreadCredentialsCommand(cc *cli.CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "credentials <id>",
		Short: "List the credentials stored for a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			items, err := client.ListThreadCredentials(cmd.Context(), threadID)
			if err != nil {
				return fmt.Errorf("failed to list credentials: %w", err)
			}
			if items == nil {
				items = []models.Credential{}
			}

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, items)
			}
			w := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(w, "No credentials")
				return nil
			}
			table := cli.NewTableFormatter(w)
			table.Header("NAME", "ENV VARS", "EXPIRES")
			for _, c := range items {
				expires := "-"
				if c.ExpiresAt != nil {
					expires = cli.FormatAge(*c.ExpiresAt)
				}
				table.Row(c.Name, cli.ValueOrDash(strings.Join(c.EnvVars, ", ")), expires)
			}
			table.Flush()
			return nil
		},
	}
}

func newThreadDeleteCredentialCommand(cc *cli.CommandContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete-credential <id> <name>",
		Short: "Delete a credential from a thread",
		Long: `Delete a credential stored for a thread.

You will need to re-authenticate to use any tools that require this
credential.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			name := args[1]
			if err := cli.ValidateCredentialName(name); err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			if !force {
				prompt := fmt.Sprintf("Delete credential '%s' from thread %s? You will need to re-authenticate to use any tools that require it.", name, threadID)
				confirmed, err := cli.Confirm(prompt, false)
				if err != nil {
					return err
				}
				if !confirmed {
					cli.PrintInfo("Deletion cancelled")
					return nil
				}
			}

			if err := client.DeleteThreadCredential(cmd.Context(), threadID, name); err != nil {
				return fmt.Errorf("failed to delete credential: %w", err)
			}
			cli.PrintSuccess("Deleted credential %s", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")
	return cmd
}

func newThreadDownloadCommand(cc *cli.CommandContext) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <id> <file>",
		Short: "Download a file from a thread's workspace",
		Long: `Download a file from a thread's workspace. An existing file with the
same name is never overwritten; a numbered copy is created instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			threadID, err := threadArg(args)
			if err != nil {
				return err
			}
			settings, err := cc.LoadSettings()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = settings.Download.Dir
			}
			if err := cli.ValidateDownloadDir(dir); err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			path, err := client.DownloadThreadFile(cmd.Context(), threadID, args[1], dir)
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", args[1], err)
			}
			cli.PrintSuccess("%s → %s", args[1], path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to save into (default from config)")
	return cmd
}

func pluralNoun(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
