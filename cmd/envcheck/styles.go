package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/eleven-am/envcheck/internal/domain"
)

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	passStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	checkNameStyle = lipgloss.NewStyle().
			Width(14)
)

func statusBadge(status domain.CheckStatus) string {
	switch status {
	case domain.StatusPass:
		return passStyle.Render("PASS")
	case domain.StatusWarn:
		return warnStyle.Render("WARN")
	default:
		return failStyle.Render("FAIL")
	}
}
