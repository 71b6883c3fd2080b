package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AttachEditTheme wraps the default Fyne theme with compact sizing so the
// attachment panel fits next to the view.
type AttachEditTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewAttachEditTheme creates a theme following the system light/dark variant.
func NewAttachEditTheme() *AttachEditTheme {
	return &AttachEditTheme{base: theme.DefaultTheme(), system: true}
}

// NewAttachEditThemeWithVariant creates a theme with a fixed variant.
func NewAttachEditThemeWithVariant(variant fyne.ThemeVariant) *AttachEditTheme {
	return &AttachEditTheme{base: theme.DefaultTheme(), variant: variant}
}

// themeForName maps the config theme name to a theme.
func themeForName(name string) *AttachEditTheme {
	switch name {
	case "light":
		return NewAttachEditThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewAttachEditThemeWithVariant(theme.VariantDark)
	default:
		return NewAttachEditTheme()
	}
}

// Color delegates to the base theme, forcing the stored variant unless the
// system variant is followed.
func (t *AttachEditTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *AttachEditTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *AttachEditTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *AttachEditTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}

// applyTheme installs the theme named in the config.
func (a *App) applyTheme() {
	if a.app == nil {
		return
	}
	a.app.Settings().SetTheme(themeForName(a.config.Theme))
}
