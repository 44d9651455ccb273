package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const releaseRepository = "s0up4200/vendctl"

var (
	updateCheckOnly bool
	updateForce     bool
)

// updateCmd replaces the running binary with the latest release
var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Update vendctl to the latest release",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "only report whether an update is available")
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "update even when the current build has no release version")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(appVersion)
	if err != nil && !updateForce {
		return fmt.Errorf("current version %q is not a release build; use --force to install the latest release", appVersion)
	}

	release, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseRepository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", releaseRepository)
	}

	latest, err := semver.ParseTolerant(release.Version())
	if err != nil {
		return fmt.Errorf("latest release has an invalid version %q: %w", release.Version(), err)
	}

	out := cmd.OutOrStdout()
	if !updateForce && latest.LTE(current) {
		fmt.Fprintf(out, "vendctl %s is up to date\n", current)
		return nil
	}

	if updateCheckOnly {
		fmt.Fprintf(out, "vendctl %s is available (current %s)\n", latest, appVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().
		Str("from", appVersion).
		Str("to", latest.String()).
		Str("asset", release.AssetName).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "Updated vendctl to %s\n", latest)
	return nil
}
