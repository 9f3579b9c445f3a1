package styles

// Status symbols used when rendering a run report. Plain Unicode glyphs
// rather than nerd-font icons, so output stays legible in CI logs that
// don't render a nerd font.
const (
	SymbolPass    = "✓"
	SymbolFail    = "✗"
	SymbolSkip    = "○"
	SymbolWarning = "⚠"
)

// FormatStatus returns sym styled with the color matching its meaning.
func FormatStatus(sym string) string {
	switch sym {
	case SymbolPass:
		return SuccessStyle.Render(sym)
	case SymbolFail:
		return ErrorStyle.Render(sym)
	case SymbolWarning:
		return WarningStyle.Render(sym)
	default:
		return MutedStyle.Render(sym)
	}
}
