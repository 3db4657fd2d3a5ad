package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chadlavi/draw-it/internal/compositor"
)

// DebugPanel shows the latest export: a thumbnail of the image and the
// literal encoded string.
type DebugPanel struct {
	encoded string
	preview image.Image
}

// NewDebugPanel creates an empty debug panel
func NewDebugPanel() DebugPanel {
	return DebugPanel{}
}

// Update tracks the current export. Decoding only happens when it changes.
func (d *DebugPanel) Update(encoded string) {
	if encoded == d.encoded {
		return
	}
	d.encoded = encoded
	d.preview = nil
	if encoded == "" {
		return
	}
	if img, err := compositor.DecodeImage(encoded); err == nil {
		d.preview = img
	}
}

// Visible reports whether there is an export to show.
func (d *DebugPanel) Visible() bool {
	return d.encoded != ""
}

// Render renders the debug panel
func (d *DebugPanel) Render(width, height int) string {
	if !d.Visible() || width < 8 || height < 6 {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("~*~ DEBUGGING INFO ~*~")

	// Calculate available area for content (minus title and borders)
	innerWidth := width - 4
	contentHeight := height - 3

	var lines []string
	if d.preview != nil {
		side := min(innerWidth, contentHeight)
		previewRows := max(side/2, 1)
		lines = append(lines, halfBlocks(thumbnail(d.preview, previewRows*2, previewRows))...)
	}

	// Wrap the encoded string into the remaining lines
	remaining := contentHeight - len(lines)
	text := d.encoded
	for remaining > 0 && text != "" {
		n := min(innerWidth, len(text))
		chunk := text[:n]
		text = text[n:]
		if remaining == 1 && text != "" && n > 3 {
			chunk = chunk[:n-3] + "..."
		}
		lines = append(lines, DimStyle.Render(chunk))
		remaining--
	}

	// Pad with empty lines if needed
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")

	// Style the panel
	panel := lipgloss.NewStyle().
		Width(width - 2).
		Height(height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + content)

	return panel
}
