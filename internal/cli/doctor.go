package cli

import (
	"fmt"
	"os"

	"github.com/progzone122/kff/internal/doctor"
	"github.com/progzone122/kff/internal/prompt"
	"github.com/progzone122/kff/internal/repository"
	"github.com/spf13/cobra"
)

var (
	checkRegistry bool
	checkManifest string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkRegistry, "check-registry", false, "Verify the template registry is reachable")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a template.json file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Kindle development environment",
	Long: `Run diagnostic checks on the KSDK installation, the template cache and the
build tools kff projects need (git, meson, ninja).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings()
		if err != nil {
			return err
		}

		report := doctor.Run(cmd.Context(), doctor.Options{
			KSDK:          s.KSDK,
			TemplatesDir:  s.TemplatesDir,
			Registry:      repository.NewHTTPRegistry(s.RegistryURL),
			CheckRegistry: checkRegistry,
			ManifestPath:  checkManifest,
		})

		out := cmd.OutOrStdout()
		styled := false
		if f, ok := out.(*os.File); ok {
			styled = prompt.IsTerminal(f)
		}
		doctor.Render(out, report, styled)

		if checkManifest != "" {
			last := report.Sections[len(report.Sections)-1]
			for _, c := range last.Checks {
				if c.Status == doctor.StatusFail {
					return fmt.Errorf("manifest %s is invalid", checkManifest)
				}
			}
		}
		return nil
	},
}
