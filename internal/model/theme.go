package model

import "strings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme treats anything but "dark" as light, including an absent value.
func ParseTheme(raw string) Theme {
	if strings.TrimSpace(raw) == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Glyph is the indicator shown on the theme toggle; it advertises the other mode.
func (t Theme) Glyph() string {
	if t == ThemeDark {
		return "☀️"
	}
	return "🌙"
}
