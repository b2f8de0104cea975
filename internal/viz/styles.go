package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GradientText colours each rune of text along a line from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, to := parseHex(string(start)), parseHex(string(end))

	var out strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		var mix [3]int
		for k := range mix {
			mix[k] = from[k] + int(t*float64(to[k]-from[k]))
		}
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(mix))).Render(string(c)))
	}
	return out.String()
}

// Spinner returns one frame of the autoplay indicator.
func Spinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders how far through the timeline the previewer is.
func ProgressBar(percent float64, width int, style lipgloss.Style) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

// Separator draws a horizontal rule with a centred diamond.
func Separator(width int, style lipgloss.Style) string {
	if width < 8 {
		return style.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return style.Render(left + " ◆ " + right)
}

// BoxWithTitle renders content inside a rounded box headed by title.
func BoxWithTitle(title, content string, s Styles) string {
	return s.Panel.Render(s.Title.Render(title) + "\n" + content)
}

// parseHex reads "#rrggbb"; anything else is white.
func parseHex(hex string) [3]int {
	white := [3]int{255, 255, 255}
	if len(hex) != 7 || hex[0] != '#' {
		return white
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return white
	}
	return [3]int{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

func hexColor(rgb [3]int) string {
	for i, v := range rgb {
		rgb[i] = min(max(v, 0), 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
