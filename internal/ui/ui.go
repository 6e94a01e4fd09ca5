package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Out receives the trace. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

func PrintHeader(msg string) {
	fmt.Fprintf(Out, "\n%s\n", headerStyle.Render(msg))
}

func PrintSuccess(label, detail string) {
	printLine(successStyle.Render("✔"), label, successStyle.Render(detail))
}

func PrintError(label, detail string) {
	printLine(errorStyle.Render("✘"), label, errorStyle.Render(detail))
}

func PrintWarning(label, detail string) {
	printLine(warningStyle.Render("!"), label, warningStyle.Render(detail))
}

// PrintInfo prints a neutral detail line.
func PrintInfo(label, detail string) {
	printLine(" ", label, detailStyle.Render(detail))
}

// PrintGenerated prints one line per generated path, with its size when the
// file can be stat'ed.
func PrintGenerated(paths []string) {
	for _, p := range paths {
		detail := p
		if info, err := os.Stat(p); err == nil {
			detail = fmt.Sprintf("%s (%s)", p, humanize.Bytes(uint64(info.Size())))
		}
		PrintSuccess("Generated", detail)
	}
}

func printLine(mark, label, detail string) {
	fmt.Fprintf(Out, "  %s %-15s %s\n", mark, label, detail)
}
