package doctor

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var tagStyles = map[Status]lipgloss.Style{
	StatusOK:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
	StatusInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
	StatusWarn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D29922")),
	StatusMiss: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	StatusFail: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

// Render writes the report to w. Colors are used only when styled is true.
func Render(w io.Writer, r *Report, styled bool) {
	paint := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintln(w, paint(titleStyle, "--- kff doctor ---"))
	for _, section := range r.Sections {
		fmt.Fprintln(w, paint(titleStyle, section.Title))
		for _, c := range section.Checks {
			fmt.Fprintf(w, "  %s %s\n", paint(tagStyles[c.Status], c.Status.Tag()), c.Message)
			for _, line := range c.Detail {
				fmt.Fprintf(w, "         %s\n", paint(detailStyle, line))
			}
		}
	}
}
