package models

import "strings"

// Story themes a party can play.
const (
	ThemeSciFi     = "scifi"
	ThemeRomance   = "romance"
	ThemeMystery   = "mystery"
	ThemeAdventure = "adventure"
)

// DefaultTheme is used when no theme or an unknown theme is requested.
const DefaultTheme = ThemeSciFi

// Themes lists the supported themes.
var Themes = []string{ThemeSciFi, ThemeRomance, ThemeMystery, ThemeAdventure}

// NormalizeTheme maps a requested theme onto a supported one.
func NormalizeTheme(theme string) string {
	theme = strings.ToLower(strings.TrimSpace(theme))
	for _, t := range Themes {
		if t == theme {
			return t
		}
	}
	return DefaultTheme
}
