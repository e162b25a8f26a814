package commands

import (
	"github.com/spf13/cobra"

	"github.com/otto8-ai/otto-admin/internal/cli"
	"github.com/otto8-ai/otto-admin/pkg/providers"
)

// OAuthAppType is one OAuth application type as printed by oauth-apps types
type OAuthAppType struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// NewOAuthAppsCommand creates the oauth-apps command group
func NewOAuthAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oauth-apps",
		Short: "Inspect OAuth application types",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List the OAuth application types the platform supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			var types []OAuthAppType
			for _, p := range providers.AllOAuthProviders() {
				types = append(types, OAuthAppType{Type: string(p), Name: p.DisplayName(), Icon: p.Icon()})
			}

			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, types)
			}
			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("TYPE", "NAME")
			for _, t := range types {
				name := t.Name
				if !cli.NoColor() {
					name = t.Icon + " " + name
				}
				table.Row(t.Type, name)
			}
			table.Flush()
			return nil
		},
	})
	return cmd
}
