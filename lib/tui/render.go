// Copyright 2026 The Framewright Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/framewright/media/lib/library"
	"github.com/framewright/media/lib/schema/media"
)

// ColorEnabled reports whether output to file should be coloured: it
// must be a terminal and NO_COLOR must be unset.
func ColorEnabled(file *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Renderer produces styled text for one output stream.
type Renderer struct {
	lip   *lipgloss.Renderer
	theme Theme
	color bool
}

// NewRenderer binds a renderer to output. With color false every
// style degrades to plain text.
func NewRenderer(output io.Writer, color bool) *Renderer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	// SetColorProfile is needed as well: lipgloss re-detects the
	// profile from the environment unless one is set explicitly.
	lip := lipgloss.NewRenderer(output, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)
	return &Renderer{lip: lip, theme: DefaultTheme, color: color}
}

// Color reports whether this renderer emits escape sequences.
func (r *Renderer) Color() bool {
	return r.color
}

func (r *Renderer) style(color lipgloss.Color) lipgloss.Style {
	return r.lip.NewStyle().Foreground(color)
}

// OK styles a success line.
func (r *Renderer) OK(text string) string {
	return r.style(r.theme.OK).Render(text)
}

// Failure styles an error line.
func (r *Renderer) Failure(text string) string {
	return r.style(r.theme.Error).Render(text)
}

// ItemsTable renders one row per item in document order. URIs wider
// than maxURIWidth columns are truncated; zero disables truncation.
func (r *Renderer) ItemsTable(items []media.ResolvedAsset, maxURIWidth int) string {
	rows := make([][]string, len(items))
	for index, item := range items {
		uri := item.URI
		if maxURIWidth > 0 {
			uri = ansi.Truncate(uri, maxURIWidth, "…")
		}
		rows[index] = []string{
			strconv.Itoa(index),
			string(item.AssetType),
			item.AssetID,
			sourceLabel(item),
			item.License.SPDXID,
			item.Metadata.LicenseType,
			uri,
		}
	}

	header := r.lip.NewStyle().Bold(true).Foreground(r.theme.HeaderForeground).Padding(0, 1)
	cell := r.lip.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.style(r.theme.BorderColor)).
		Headers("#", "TYPE", "ASSET", "SOURCE", "LICENSE", "RIGHTS", "URI").
		Rows(rows...).
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if column == 3 && row >= 0 && row < len(items) {
				return cell.Foreground(r.theme.SourceColor(items[row]))
			}
			return cell.Foreground(r.theme.NormalText)
		}).
		Render()
}

func sourceLabel(item media.ResolvedAsset) string {
	if item.IsPlaceholder {
		return string(media.SourcePlaceholder)
	}
	if item.Source.Root != "" {
		return string(item.Source.Root)
	}
	return string(item.Source.Type)
}

// Summary is the line printed under a table.
func (r *Renderer) Summary(manifest *media.MediaManifest) string {
	placeholders := manifest.PlaceholderCount()
	line := fmt.Sprintf("%s: %d assets; %d placeholders", manifest.ManifestID, len(manifest.Items), placeholders)
	if placeholders > 0 {
		return r.style(r.theme.SourcePlaceholder).Render(line)
	}
	return r.OK(line)
}

// severityWidth aligns finding paths after the longest severity name.
const severityWidth = len(library.SeverityWarning)

// Findings renders layout findings one per line, severity first.
func (r *Renderer) Findings(findings []library.Finding) string {
	var builder strings.Builder
	for _, finding := range findings {
		label := string(finding.Severity)
		padding := strings.Repeat(" ", max(severityWidth-len(label), 0))
		severity := r.style(r.theme.SeverityColor(finding.Severity)).Render(label)
		fmt.Fprintf(&builder, "%s%s %s: %s\n", severity, padding, finding.Path, finding.Message)
	}
	return builder.String()
}

// HighlightJSON syntax-highlights JSON for a terminal. Without colour,
// or when highlighting fails, the input is returned unchanged.
func (r *Renderer) HighlightJSON(data []byte) string {
	if !r.color {
		return string(data)
	}
	var builder strings.Builder
	if err := quick.Highlight(&builder, string(data), "json", "terminal256", "monokai"); err != nil {
		return string(data)
	}
	return builder.String()
}
