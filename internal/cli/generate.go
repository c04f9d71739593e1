package cli

import (
	"fmt"
	"path/filepath"

	"github.com/progzone122/kff/internal/branding"
	"github.com/progzone122/kff/internal/generate"
	"github.com/progzone122/kff/internal/prompt"
	"github.com/progzone122/kff/internal/repository"
	"github.com/spf13/cobra"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate <template>",
	Short: "Generate a project from a template",
	Long: `Generate a new project from a template.

The template is looked up in the local template cache first and then in the
remote registry. Remote templates are cloned fresh on every run. The questions
declared in the template's template.json are asked on the terminal, their
answers replace the template's placeholders, and the project is written to a
folder named after the app_name answer (or the template name).`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", ".", "Directory to create the project in")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := settings()
	if err != nil {
		return err
	}
	outputDir, err := filepath.Abs(generateOutput)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, branding.Banner)

	resolver := repository.NewResolver(repository.Options{
		TemplatesDir: s.TemplatesDir,
		Registry:     repository.NewHTTPRegistry(s.RegistryURL),
		Out:          cmd.ErrOrStderr(),
	})
	gen := generate.New(generate.Options{
		Resolver:   resolver,
		Asker:      prompt.NewAsker(cmd.InOrStdin(), out),
		Out:        out,
		Warn:       cmd.ErrOrStderr(),
		ScratchDir: s.ScratchDir,
		OutputDir:  outputDir,
		Version:    buildVersion,
	})

	result, err := gen.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Project %s is ready at %s\n", result.Template, result.OutputPath)
	return nil
}
