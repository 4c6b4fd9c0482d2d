// package ui holds the terminal stylesheet for CLI output.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spinsync/spinsync/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders a section heading.
func Title(s string) string { return styles.title.Render(s) }

// OK renders success text.
func OK(s string) string { return styles.ok.Render(s) }

// Err renders failure text.
func Err(s string) string { return styles.err.Render(s) }

// Warn renders cautionary text.
func Warn(s string) string { return styles.warn.Render(s) }

// Help renders secondary/help text.
func Help(s string) string { return styles.help.Render(s) }

// Status renders a sync status in its conventional color: green for added,
// purple for matched, orange for not found, red for errors.
func Status(status models.SyncStatus) string {
	label := string(status)
	switch status {
	case models.StatusAdded:
		return styles.ok.Render(label)
	case models.StatusMatched:
		return styles.title.UnsetMarginBottom().Render(label)
	case models.StatusNotFound:
		return styles.warn.Render(label)
	case models.StatusError:
		return styles.err.Render(label)
	default:
		return label
	}
}
