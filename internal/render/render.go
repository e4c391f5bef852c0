// Package render turns note bodies into styled terminal text.
package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// Cached glamour renderer to avoid recreation on every render call.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	rendererMu          sync.Mutex
)

// Markdown renders a note body as styled terminal text wrapped to the
// given width. On renderer failure the raw body is returned.
func Markdown(body string, width int) string {
	if width <= 0 {
		width = 80
	}

	// Constrain content width for readability.
	contentWidth := width - 4
	if contentWidth > 100 {
		contentWidth = 100
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	out, err := renderWithGlamour(body, contentWidth)
	if err != nil {
		return body
	}
	return out
}

// renderWithGlamour uses glamour to render markdown into styled terminal
// output. Uses a cached renderer to avoid expensive recreation on every
// call.
func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	// Recreate renderer only if width changed or not initialized.
	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
	}

	out, err := cachedRenderer.Render(markdown)
	if err != nil {
		return "", err
	}

	return out, nil
}
