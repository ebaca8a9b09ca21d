// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/framewright/media/lib/library"
	"github.com/framewright/media/lib/schema/media"
)

// Theme is the colour palette for media's terminal output, in ANSI
// 256-colour codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Item sources.
	SourceLibrary     lipgloss.Color
	SourceFallback    lipgloss.Color
	SourcePlaceholder lipgloss.Color

	// Finding severities and status lines.
	Error   lipgloss.Color
	Warning lipgloss.Color
	OK      lipgloss.Color
}

// SourceColor returns the colour for an item's provenance.
func (theme Theme) SourceColor(item media.ResolvedAsset) lipgloss.Color {
	switch {
	case item.IsPlaceholder:
		return theme.SourcePlaceholder
	case item.Source.Root == media.RootLibrary:
		return theme.SourceLibrary
	case item.Source.Root == media.RootFallback:
		return theme.SourceFallback
	default:
		return theme.NormalText
	}
}

// SeverityColor returns the colour for a layout finding.
func (theme Theme) SeverityColor(severity library.Severity) lipgloss.Color {
	switch severity {
	case library.SeverityError:
		return theme.Error
	case library.SeverityWarning:
		return theme.Warning
	default:
		return theme.FaintText
	}
}

// DefaultTheme targets 256-colour terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SourceLibrary:     lipgloss.Color("114"), // green
	SourceFallback:    lipgloss.Color("75"),  // blue
	SourcePlaceholder: lipgloss.Color("220"), // amber

	Error:   lipgloss.Color("196"),
	Warning: lipgloss.Color("208"),
	OK:      lipgloss.Color("114"),
}
