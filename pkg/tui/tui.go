// Package tui renders run progress and summaries on the terminal.
// Simple, streaming, no complex TUI - just clean output.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// PrintHeader prints the tool banner.
func PrintHeader(version string) {
	fmt.Println()
	fmt.Println(titleStyle.Render("  GPTILT") + mutedStyle.Render(" v"+version))
	fmt.Println(mutedStyle.Render("  Match timeline dataset builder"))
	fmt.Println()
}

// RunReport summarizes one transformation run for printing.
type RunReport struct {
	RunID       string
	Region      string
	Matches     int64
	Skipped     int64
	Quarantined int64
	Events      int64
	Duration    time.Duration
}

// PrintRunReport prints results after a run.
func PrintRunReport(report *RunReport) {
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ RUN COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s\n", mutedStyle.Render("Run:"), titleStyle.Render(report.RunID))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Region:"), titleStyle.Render(report.Region))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Matches:"), titleStyle.Render(formatNumber(report.Matches)))
	if report.Skipped > 0 {
		fmt.Printf("  %s %s\n", mutedStyle.Render("Skipped:"), titleStyle.Render(formatNumber(report.Skipped)))
	}
	if report.Quarantined > 0 {
		fmt.Printf("  %s %s\n", mutedStyle.Render("Quarantined:"), accentStyle.Render(formatNumber(report.Quarantined)))
	}
	fmt.Printf("  %s %s\n", mutedStyle.Render("Events:"), titleStyle.Render(formatNumber(report.Events)))

	if report.Duration > 0 {
		throughput := float64(report.Matches) / report.Duration.Seconds()
		fmt.Printf("  %s %s %s\n",
			mutedStyle.Render("Time:"),
			titleStyle.Render(formatDuration(report.Duration)),
			mutedStyle.Render(fmt.Sprintf("(%.1f matches/sec)", throughput)))
	}
	fmt.Println()
}

// PrintError prints an error line.
func PrintError(msg string) {
	fmt.Println(accentStyle.Render("  ✗ " + msg))
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// ShowProgress creates a progress bar for processing.
func ShowProgress(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
