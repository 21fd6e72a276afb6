package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Ascent motif using shared brand colors from styles.go
	bannerDimStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	bannerBarStyle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	bannerArrowStyle   = lipgloss.NewStyle().Foreground(colorPrimaryLight)
	bannerTitleStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	bannerTaglineStyle = lipgloss.NewStyle().Foreground(colorPrimaryDark).Italic(true)
	bannerVersionStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderBanner() string {
	dot := bannerDimStyle.Render("·")
	rise := bannerBarStyle.Render("▂ ▄ ▆ █")
	arrow := bannerArrowStyle.Render("↑")
	title := bannerTitleStyle.Render("AUTODES")

	lines := []string{
		"      " + dot + "  " + rise + "  " + dot,
		"    " + arrow + "   " + title + "   " + arrow,
		"      " + dot + "  " + rise + "  " + dot,
	}

	return strings.Join(lines, "\n")
}

func renderBannerWithTagline() string {
	banner := renderBanner()
	tagline := bannerTaglineStyle.Render("    every day counts")
	ver := bannerVersionStyle.Render("          " + version)

	return strings.Join([]string{banner, tagline, ver}, "\n")
}
