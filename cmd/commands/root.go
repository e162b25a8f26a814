package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otto8-ai/otto-admin/internal/cli"
	"github.com/otto8-ai/otto-admin/internal/config"
	"github.com/otto8-ai/otto-admin/internal/logger"
)

// NewRootCommand builds the otto-admin command tree
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()
	cc := cli.NewCommandContext(v)

	cmd := &cobra.Command{
		Use:   "otto-admin",
		Short: "Terminal admin for otto8 threads and model providers",
		Long: `otto-admin inspects the platform from the terminal.

Run 'otto-admin thread <id>' for the interactive thread panel, or use the
threads and providers commands for scriptable output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			quiet, _ := flags.GetBool("quiet")
			noColor, _ := flags.GetBool("no-color")
			yes, _ := flags.GetBool("yes")
			cli.SetGlobalFlags(quiet, noColor, yes)
			cli.SetIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

			if _, err := outputFormat(cmd); err != nil {
				return err
			}
			return logger.Configure(v.GetString(config.KeyLogLevel), v.GetString(config.KeyLogFile))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default $HOME/.config/otto-admin/otto-admin.yaml)")
	pf.String("url", "", "Platform API URL")
	pf.String("token", "", "API token")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-file", "", "Write logs to this file")
	pf.BoolP("quiet", "q", false, "Only print errors and requested data")
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("yes", "y", false, "Answer yes to every confirmation")
	pf.StringP("output", "o", string(cli.FormatText), "Output format (text, json, yaml)")

	for key, flag := range map[string]string{
		config.KeyConfigFile: "config",
		config.KeyURL:        "url",
		config.KeyToken:      "token",
		config.KeyLogLevel:   "log-level",
		config.KeyLogFile:    "log-file",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	cmd.AddCommand(
		NewThreadCommand(cc, version),
		NewThreadsCommand(cc),
		NewProvidersCommand(cc),
		NewOAuthAppsCommand(),
		NewVersionCommand(version),
	)
	return cmd
}

// outputFormat returns the validated --output value
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText), nil
	}
	format = strings.ToLower(format)
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
