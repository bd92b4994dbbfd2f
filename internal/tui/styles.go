package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/mentora/mentora/pkg/domain"
)

// renderLogo renders "M E N T O R A" as a slow amber wave, frame-animated.
// Deep bronze (#3a2a10) -> warm amber (#fbbf24).
func renderLogo(frame int) string {
	const text = "MENTORA"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + 0.2
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(58 + b*(251-58))
		g := clampByte(42 + b*(191-42))
		bl := clampByte(16 + b*(36-16))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out += lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color)).
			Render(string(text[i]))
		if i < n-1 {
			out += "  "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ece8e0")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8c4bc"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5a5448"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5a5448"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fbbf24")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3c382e"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	savingsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474")).
			Italic(true)

	// Learning level colors, matching the platform's tier palette.
	levelColors = map[domain.LearningLevel]lipgloss.Color{
		domain.LevelFoundation:  lipgloss.Color("#34d474"),
		domain.LevelDevelopment: lipgloss.Color("#60a0e0"),
		domain.LevelMastery:     lipgloss.Color("#c084e0"),
	}

	roleColors = map[domain.Role]lipgloss.Color{
		domain.RoleStudent: lipgloss.Color("#60a0e0"),
		domain.RoleTeacher: lipgloss.Color("#d4a844"),
		domain.RoleAdmin:   lipgloss.Color("#e06060"),
	}
)

// LevelStyle returns a foreground style for a learning level chip.
func LevelStyle(level domain.LearningLevel) lipgloss.Style {
	if c, ok := levelColors[level]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// RoleStyle returns a foreground style for a role chip.
func RoleStyle(role domain.Role) lipgloss.Style {
	if c, ok := roleColors[role]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// progressBar renders a fixed-width completion bar for a 0-100 percentage.
func progressBar(pct, width int) string {
	if width < 4 {
		width = 4
	}
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	var done, rest string
	for i := 0; i < width; i++ {
		if i < filled {
			done += "█"
		} else {
			rest += "░"
		}
	}
	return okStyle.Render(done) + metaStyle.Render(rest)
}

// helpEntry renders one "key label" pair for the bottom help bar.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
