package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/progzone122/kff/internal/repository"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listOffline bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long: `List templates in the local cache and in the remote registry.

Use --offline to skip the registry request.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listOffline, "offline", false, "Only list cached templates")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a template for display.
type listEntry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := settings()
	if err != nil {
		return err
	}

	registry := repository.NewHTTPRegistry(s.RegistryURL)
	resolver := repository.NewResolver(repository.Options{
		TemplatesDir: s.TemplatesDir,
		Registry:     registry,
	})

	cached, err := resolver.Cached()
	if err != nil {
		return err
	}
	var entries []listEntry
	for _, name := range cached {
		entries = append(entries, listEntry{Name: name, Source: repository.SourceLocal.String()})
	}

	if !listOffline {
		remote, err := registry.Fetch(cmd.Context())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] %v\n", err)
		}
		for _, e := range remote {
			entries = append(entries, listEntry{Name: e.Name, Source: repository.SourceRemote.String(), URL: e.URL})
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tURL")
	for _, e := range entries {
		url := e.URL
		if url == "" {
			url = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Source, url)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
