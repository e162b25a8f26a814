package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/otto8-ai/otto-admin/internal/cli"
)

type versionResult struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"goVersion" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of otto-admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			result := versionResult{
				Version:   version,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if cli.IsStructured(format) {
				return cli.OutputResults(cmd.OutOrStdout(), format, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "otto-admin version %s (%s, %s)\n", result.Version, result.GoVersion, result.Platform)
			return nil
		},
	}
}
