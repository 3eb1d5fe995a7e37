package discord

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Embed colors
const (
	colorBlue     = 0x3498db
	colorGreen    = 0x2ecc71
	colorRed      = 0xe74c3c
	colorGold     = 0xf1c40f
	colorDarkBlue = 0x206694
)

// namedColors maps the color names accepted by /affiliatepost
var namedColors = map[string]int{
	"blue":       colorBlue,
	"green":      colorGreen,
	"red":        colorRed,
	"gold":       colorGold,
	"purple":     0x9b59b6,
	"orange":     0xe67e22,
	"teal":       0x1abc9c,
	"magenta":    0xe91e63,
	"dark_blue":  colorDarkBlue,
	"dark_green": 0x1f8b4c,
	"dark_red":   0x992d22,
	"black":      0x000000,
	"white":      0xffffff,
}

var titleCaser = cases.Title(language.English)

// titleCase renders a stored lowercase location for display
func titleCase(s string) string {
	return titleCaser.String(s)
}

// parseEmbedColor accepts a color name or a hex code like #FF5733.
// Three-digit hex shorthand is expanded.
func parseEmbedColor(input string) (int, error) {
	if c, ok := namedColors[strings.ToLower(input)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(input), "#")
	if len(hex) == 3 {
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	}

	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", input)
	}

	c, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", input)
	}

	return int(c), nil
}

// validURL reports whether a user supplied link is usable in an embed
func validURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// formatHoursMinutes renders a minute total as "Xh Ym"
func formatHoursMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// rankMedal returns the medal for the top three leaderboard rows and a
// plain numbered prefix for the rest
func rankMedal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("**%d.**", position)
	}
}

// voterList renders the first 10 voter names with a remainder suffix
func voterList(names []string) string {
	shown := names
	if len(shown) > 10 {
		shown = shown[:10]
	}

	parts := make([]string, 0, len(shown))
	for _, name := range shown {
		parts = append(parts, fmt.Sprintf("**%s**", name))
	}

	out := strings.Join(parts, ", ")
	if len(names) > 10 {
		out += fmt.Sprintf(" and **%d** more...", len(names)-10)
	}
	return out
}
