package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/otto8-ai/otto-admin/internal/cli"
	"github.com/otto8-ai/otto-admin/pkg/providers"
	"github.com/otto8-ai/otto-admin/pkg/tui"
)

// ProviderResult is one model provider as printed by providers list
type ProviderResult struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Recommended bool     `json:"recommended,omitempty" yaml:"recommended,omitempty"`
	Registered  bool     `json:"registered" yaml:"registered"`
	Configured  bool     `json:"configured" yaml:"configured"`
	Missing     []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ProviderDetail is the structured output of providers show
type ProviderDetail struct {
	ProviderResult `yaml:",inline"`

	Link       string            `json:"link,omitempty" yaml:"link,omitempty"`
	ConfigLink string            `json:"configLink,omitempty" yaml:"config_link,omitempty"`
	Fields     []providers.Field `json:"fields" yaml:"fields"`
}

func providerResult(row tui.ProviderRow) ProviderResult {
	return ProviderResult{
		ID:          row.Info.ID,
		Name:        row.Info.Name,
		Recommended: row.Info.Recommended,
		Registered:  row.Registered,
		Configured:  row.Configured,
		Missing:     row.Missing,
	}
}

func (r ProviderResult) status() string {
	switch {
	case r.Configured:
		return "configured"
	case len(r.Missing) > 0:
		return "missing " + strings.Join(r.Missing, ", ")
	case r.Registered:
		return "not configured"
	default:
		return "not registered"
	}
}

// NewProvidersCommand creates the providers command group
func NewProvidersCommand(cc *cli.CommandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Inspect model providers",
		Long: `List the model providers the platform knows, show what each one needs,
and check a configuration before entering it in the platform.

Examples:
  otto-admin providers list
  otto-admin providers show azure-openai-model-provider
  otto-admin providers check openai-model-provider --set ACORN_OPENAI_MODEL_PROVIDER_API_KEY=sk-...`,
	}

	cmd.AddCommand(
		newProvidersListCommand(cc),
		newProvidersShowCommand(cc),
		newProvidersCheckCommand(cc),
	)
	return cmd
}

func newProvidersListCommand(cc *cli.CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List model providers and their configuration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			client, err := cc.Client()
			if err != nil {
				return err
			}

			registered, err := client.ListModelProviders(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list model providers: %w", err)
			}

			var results []ProviderResult
			for _, row := range tui.ProviderRows(registered) {
				results = append(results, providerResult(row))
			}

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, results)
			}
			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("ID", "NAME", "STATUS")
			for _, r := range results {
				name := r.Name
				if r.Recommended {
					name += " ★"
				}
				table.Row(cli.ValueOrDash(r.ID), name, r.status())
			}
			table.Flush()
			return nil
		},
	}
}

func lookupProvider(id string) (providers.ModelProvider, error) {
	p := providers.ParseModelProvider(id)
	if p == providers.UnknownModelProvider {
		var known []string
		for _, p := range providers.AllModelProviders() {
			known = append(known, p.ID())
		}
		return p, fmt.Errorf("unknown model provider %q (known: %s)", id, strings.Join(known, ", "))
	}
	return p, nil
}

func newProvidersShowCommand(cc *cli.CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show what a model provider needs to be configured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lookupProvider(args[0])
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

			info := p.Info()
			detail := ProviderDetail{
				ProviderResult: ProviderResult{ID: info.ID, Name: info.Name, Recommended: info.Recommended},
				Link:           info.Link,
				ConfigLink:     info.ConfigLink,
				Fields:         info.Fields,
			}

			registered, err := client.ListModelProviders(cmd.Context())
			if err != nil {
				cli.PrintWarning("Could not load the platform's status for %s: %v", info.Name, err)
			}
			for _, row := range tui.ProviderRows(registered) {
				if row.Info.ID == info.ID {
					detail.ProviderResult = providerResult(row)
				}
			}

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, detail)
			}
			printProviderDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func printProviderDetail(w io.Writer, d ProviderDetail) {
	table := cli.NewTableFormatter(w)
	name := d.Name
	if d.Recommended {
		name += " ★ recommended"
	}
	table.Row("Name:", name)
	table.Row("ID:", d.ID)
	table.Row("Status:", d.status())
	table.Row("Link:", cli.ValueOrDash(d.Link))
	if d.ConfigLink != "" {
		table.Row("Setup guide:", d.ConfigLink)
	}
	table.Flush()

	fmt.Fprintln(w)
	table = cli.NewTableFormatter(w)
	table.Header("FIELD", "PARAMETER", "SENSITIVE")
	for _, f := range d.Fields {
		sensitive := "no"
		if f.Sensitive {
			sensitive = "yes"
		}
		table.Row(f.Label, f.EnvVar, sensitive)
	}
	table.Flush()

	for _, f := range d.Fields {
		if f.Tooltip != "" {
			fmt.Fprintf(w, "\n%s: %s", f.Label, f.Tooltip)
		}
	}
	fmt.Fprintln(w)
}

func newProvidersCheckCommand(cc *cli.CommandContext) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "Validate a model provider configuration and probe the provider",
		Long: `Check that every parameter a model provider needs is set, then make a
cheap request to the provider with those values.

Parameters come from --set KEY=VALUE, falling back to environment
variables of the same name. Sensitive values are masked in the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lookupProvider(args[0])
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			set, err := cli.ParseKeyValues(params)
			if err != nil {
				return err
			}

			config := map[string]string{}
			for _, f := range p.Info().Fields {
				if v, ok := set[f.EnvVar]; ok {
					config[f.EnvVar] = v
				} else if v := os.Getenv(f.EnvVar); v != "" {
					config[f.EnvVar] = v
				}
			}

			settings := cc.LoadSettingsWithDefault()
			checker := providers.NewChecker(providers.WithProbeTimeout(settings.API.Timeout))
			report := checker.Check(cmd.Context(), p, config)

			if cli.IsStructured(format) {
				if err := cli.OutputResults(cmd.OutOrStdout(), format, report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), p, config, report)
			}

			if !report.Passed() {
				return fmt.Errorf("preflight failed for %s", report.Provider)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&params, "set", nil, "Configuration parameter as KEY=VALUE (repeatable)")
	return cmd
}

func printReport(w io.Writer, p providers.ModelProvider, config map[string]string, report providers.Report) {
	table := cli.NewTableFormatter(w)
	table.Header("PARAMETER", "VALUE")
	for _, f := range p.Info().Fields {
		table.Row(f.EnvVar, cli.ValueOrDash(providers.Mask(f.EnvVar, config[f.EnvVar])))
	}
	table.Flush()
	fmt.Fprintln(w)

	table = cli.NewTableFormatter(w)
	table.Header("CHECK", "STATUS", "TIME", "MESSAGE")
	for _, c := range report.Checks {
		elapsed := "-"
		if c.Duration > 0 {
			elapsed = c.Duration.Round(time.Millisecond).String()
		}
		table.Row(c.Name, c.Status, elapsed, c.Message)
	}
	table.Flush()
}
