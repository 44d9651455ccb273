package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/spf13/cobra"

	"github.com/s0up4200/vendctl/version"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		release := "development build"
		if v, err := semver.ParseTolerant(appVersion); err == nil {
			release = "release " + v.String()
		}

		fmt.Fprintf(out, "vendctl %s (%s)\n", appVersion, release)
		fmt.Fprintf(out, "  built:       %s\n", buildTime)
		fmt.Fprintf(out, "  go:          %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  api version: %s (default)\n", version.Example)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
