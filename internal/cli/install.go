package cli

import (
	"fmt"
	"path/filepath"

	"github.com/progzone122/kff/internal/installer"
	"github.com/spf13/cobra"
)

var (
	installTag string
	installDir string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Kindle toolchain or SDK",
}

var installToolchainCmd = &cobra.Command{
	Use:   "toolchain <target>",
	Short: "Download a prebuilt koxtoolchain",
	Long: `Download the koxtoolchain release archive for a target (for example
kindlehf, kindlepw2 or kindle5) and unpack it into --dir.`,
	Example: "  kff install toolchain kindlehf",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings()
		if err != nil {
			return err
		}
		dir, err := filepath.Abs(installDir)
		if err != nil {
			return fmt.Errorf("resolving install directory: %w", err)
		}

		inst := installer.New(s.ToolchainRepo, installer.WithOutput(cmd.ErrOrStderr()))
		result, err := inst.InstallToolchain(cmd.Context(), args[0], installTag, dir)
		if err != nil {
			return fmt.Errorf("installing toolchain: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s (%s, %d files) into %s\n", result.Asset, result.Tag, result.Files, result.Dir)
		return nil
	},
}

var installSDKCmd = &cobra.Command{
	Use:   "sdk <target>",
	Short: "Build the Kindle SDK",
	Long: `Clone the Kindle SDK repository with its submodules into --dir and run
its gen-sdk.sh script for a target.`,
	Example: "  kff install sdk kindlehf",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings()
		if err != nil {
			return err
		}

		inst := installer.New(s.ToolchainRepo, installer.WithOutput(cmd.ErrOrStderr()))
		dest, err := inst.InstallSDK(cmd.Context(), args[0], s.SDKRepoURL, installDir)
		if err != nil {
			return fmt.Errorf("installing SDK: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SDK built in %s\nSet KSDK to point at the generated SDK before building projects.\n", dest)
		return nil
	},
}

func init() {
	installToolchainCmd.Flags().StringVar(&installTag, "tag", "", "Release tag to install (default: latest)")
	installCmd.PersistentFlags().StringVar(&installDir, "dir", ".", "Directory to install into")
	installCmd.AddCommand(installToolchainCmd)
	installCmd.AddCommand(installSDKCmd)
	rootCmd.AddCommand(installCmd)
}
