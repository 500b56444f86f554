package interactive

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the web theme colours.
var (
	ColorPrimary = lipgloss.Color("#1d4ed8")
	ColorSuccess = lipgloss.Color("#15803d")
	ColorError   = lipgloss.Color("#b91c1c")
	ColorMuted   = lipgloss.Color("#6b7280")
)

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Title         lipgloss.Style
	Section       lipgloss.Style
	SectionActive lipgloss.Style
	Label         lipgloss.Style
	Cursor        lipgloss.Style
	Value         lipgloss.Style
	Placeholder   lipgloss.Style
	Required      lipgloss.Style
	FieldError    lipgloss.Style
	Notice        lipgloss.Style
	BannerSuccess lipgloss.Style
	BannerError   lipgloss.Style
}

// DefaultStyles returns the stock styles.
func DefaultStyles() Styles {
	banner := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Section:       lipgloss.NewStyle().Bold(true),
		SectionActive: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Label:         lipgloss.NewStyle(),
		Cursor:        lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		Value:         lipgloss.NewStyle().Underline(true),
		Placeholder:   lipgloss.NewStyle().Foreground(ColorMuted),
		Required:      lipgloss.NewStyle().Foreground(ColorError),
		FieldError:    lipgloss.NewStyle().Foreground(ColorError),
		Notice:        lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		BannerSuccess: banner.BorderForeground(ColorSuccess).Foreground(ColorSuccess),
		BannerError:   banner.BorderForeground(ColorError).Foreground(ColorError),
	}
}
