package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI-coloured block for a colour.
// Width specifies how many characters wide the colour block should be.
func Preview(c Color, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewPair renders sample text in fg on bg, centred in a block of width characters.
func PreviewPair(fg, bg Color, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, bg.R, bg.G, bg.B, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	// Pad or truncate text to fit width.
	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgCode + fgCode + display + ansiReset
}

// PreviewWithText renders text over a colour using the better of black or white.
func PreviewWithText(c Color, text string, width int) string {
	return PreviewPair(BestTextColour(c), c, text, width)
}

// FormatWithPreview formats a colour with its preview block and hex code.
func FormatWithPreview(c Color, width int) string {
	return fmt.Sprintf("%s %s", Preview(c, width), c.Hex())
}
