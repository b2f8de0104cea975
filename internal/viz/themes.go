package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the previewer and the summary tables.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Canvas     lipgloss.Color
}

var (
	ThemeBlackboard = Theme{
		Name:       "blackboard",
		Primary:    lipgloss.Color("#58c4dd"),
		Secondary:  lipgloss.Color("#83c167"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#777777"),
		Canvas:     lipgloss.Color("#dddddd"),
	}

	ThemeChalk = Theme{
		Name:       "chalk",
		Primary:    lipgloss.Color("#e8e8e8"),
		Secondary:  lipgloss.Color("#a8d8b9"),
		Accent:     lipgloss.Color("#f6c177"),
		Background: lipgloss.Color("#1f2a24"),
		Text:       lipgloss.Color("#f5f5f5"),
		Muted:      lipgloss.Color("#6b7d72"),
		Canvas:     lipgloss.Color("#f5f5f5"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#1c5d99"),
		Secondary:  lipgloss.Color("#3a7d44"),
		Accent:     lipgloss.Color("#c0392b"),
		Background: lipgloss.Color("#fdf6e3"),
		Text:       lipgloss.Color("#222222"),
		Muted:      lipgloss.Color("#93a1a1"),
		Canvas:     lipgloss.Color("#333333"),
	}

	Themes = []Theme{
		ThemeBlackboard,
		ThemeChalk,
		ThemePaper,
	}
)

// GetTheme returns a theme by name, falling back to the blackboard theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeBlackboard
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Styles are the rendered lipgloss styles of a theme.
type Styles struct {
	Title   lipgloss.Style
	Panel   lipgloss.Style
	Canvas  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	Playing lipgloss.Style
	Paused  lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Canvas: lipgloss.NewStyle().
			Foreground(t.Canvas),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Playing: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Paused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
	}
}
