package style

import (
	"bytes"
	"image/color"
	"log"
	"slices"

	"github.com/ebitenui/ebitenui/image"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Theme colors (package-level variables updated by ApplyTheme)
var (
	Background        = ThemeDefault.Background
	Surface           = ThemeDefault.Surface
	Text              = ThemeDefault.Text
	TextSecondary     = ThemeDefault.TextSecondary
	Accent            = ThemeDefault.Accent
	OverlayBackground = ThemeDefault.OverlayBackground
)

// Theme holds the colors of the stage and HUD
type Theme struct {
	Name              string
	Background        color.NRGBA // Stage clear color behind the posters
	Surface           color.NRGBA // Status bar
	Text              color.NRGBA
	TextSecondary     color.NRGBA
	Accent            color.NRGBA // Panel titles
	OverlayBackground color.NRGBA // Help panel, notifications, lane finder (alpha applied per use)
}

// Predefined themes
var (
	ThemeDefault = Theme{
		Name:              "Default",
		Background:        color.NRGBA{0x14, 0x16, 0x24, 0xff}, // Night blue
		Surface:           color.NRGBA{0x22, 0x25, 0x38, 0xff},
		Text:              color.NRGBA{0xff, 0xff, 0xff, 0xff},
		TextSecondary:     color.NRGBA{0xa8, 0xac, 0xbc, 0xff},
		Accent:            color.NRGBA{0xff, 0xc8, 0x3d, 0xff}, // Marquee amber
		OverlayBackground: color.NRGBA{0x14, 0x16, 0x24, 0xff},
	}

	ThemeDark = Theme{
		Name:              "Dark",
		Background:        color.NRGBA{0x05, 0x05, 0x05, 0xff},
		Surface:           color.NRGBA{0x18, 0x18, 0x18, 0xff},
		Text:              color.NRGBA{0xf0, 0xf0, 0xf0, 0xff},
		TextSecondary:     color.NRGBA{0x88, 0x88, 0x88, 0xff},
		Accent:            color.NRGBA{0x3d, 0xa5, 0xff, 0xff}, // Blue
		OverlayBackground: color.NRGBA{0x0a, 0x0a, 0x0a, 0xff},
	}

	ThemeLight = Theme{
		Name:              "Light",
		Background:        color.NRGBA{0xe6, 0xe6, 0xea, 0xff},
		Surface:           color.NRGBA{0xf7, 0xf7, 0xf9, 0xff},
		Text:              color.NRGBA{0x16, 0x16, 0x1c, 0xff},
		TextSecondary:     color.NRGBA{0x60, 0x60, 0x6c, 0xff},
		Accent:            color.NRGBA{0xc2, 0x41, 0x0c, 0xff}, // Rust
		OverlayBackground: color.NRGBA{0xf0, 0xf0, 0xf2, 0xff},
	}

	ThemeCinema = Theme{
		Name:              "Cinema",
		Background:        color.NRGBA{0x1a, 0x05, 0x08, 0xff}, // Curtain red, nearly black
		Surface:           color.NRGBA{0x2e, 0x0c, 0x12, 0xff},
		Text:              color.NRGBA{0xf5, 0xe6, 0xc8, 0xff}, // Ticket cream
		TextSecondary:     color.NRGBA{0xa8, 0x90, 0x78, 0xff},
		Accent:            color.NRGBA{0xe8, 0xb4, 0x4c, 0xff}, // Gold
		OverlayBackground: color.NRGBA{0x1a, 0x05, 0x08, 0xff},
	}

	ThemeHighContrast = Theme{
		Name:              "High Contrast",
		Background:        color.NRGBA{0x00, 0x00, 0x00, 0xff},
		Surface:           color.NRGBA{0x40, 0x40, 0x40, 0xff},
		Text:              color.NRGBA{0xff, 0xff, 0xff, 0xff},
		TextSecondary:     color.NRGBA{0xcc, 0xcc, 0xcc, 0xff},
		Accent:            color.NRGBA{0xff, 0xff, 0x00, 0xff}, // Yellow
		OverlayBackground: color.NRGBA{0x00, 0x00, 0x00, 0xff},
	}

	// AvailableThemes lists all themes accepted in config.json
	AvailableThemes = []Theme{ThemeDefault, ThemeDark, ThemeLight, ThemeCinema, ThemeHighContrast}

	// CurrentThemeName tracks the active theme name
	CurrentThemeName = ThemeDefault.Name
)

// ThemeNames returns the list of valid theme name strings.
func ThemeNames() []string {
	names := make([]string, len(AvailableThemes))
	for i, t := range AvailableThemes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	return slices.IndexFunc(AvailableThemes, func(t Theme) bool { return t.Name == name })
}

// GetThemeByName returns theme by name, or ThemeDefault if not found
func GetThemeByName(name string) Theme {
	if i := themeIndex(name); i >= 0 {
		return AvailableThemes[i]
	}
	return ThemeDefault
}

// IsValidThemeName returns true if the name matches a known theme
func IsValidThemeName(name string) bool {
	return themeIndex(name) >= 0
}

// ApplyTheme updates package-level color variables from a theme
func ApplyTheme(theme Theme) {
	Background = theme.Background
	Surface = theme.Surface
	Text = theme.Text
	TextSecondary = theme.TextSecondary
	Accent = theme.Accent
	OverlayBackground = theme.OverlayBackground
	CurrentThemeName = theme.Name
}

// ApplyThemeByName applies theme by name with fallback to Default
func ApplyThemeByName(name string) {
	ApplyTheme(GetThemeByName(name))
}

// baseFontSize is the point size all font-dependent values are relative to
const baseFontSize = 14.0

var (
	currentFontSize = baseFontSize
	dpiScale        = 1.0 // device pixel ratio (2.0 on retina)
)

// DPIScale returns the current device scale factor.
func DPIScale() float64 {
	return dpiScale
}

// Px converts a logical pixel value to physical pixels using the current DPI scale.
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// SetDPIScale sets the DPI scale factor and recalculates all spatial vars.
func SetDPIScale(scale float64) {
	dpiScale = max(scale, 1.0)

	DefaultPadding = Px(baseDefaultPadding)
	DefaultSpacing = Px(baseDefaultSpacing)
	SmallSpacing = Px(baseSmallSpacing)
	TinySpacing = Px(baseTinySpacing)
	OverlayPadding = Px(baseOverlayPadding)
	OverlayMargin = Px(baseOverlayMargin)
	HelpPanelMinWidth = Px(baseHelpPanelMinWidth)

	// Font-dependent vars also carry the DPI scale
	ApplyFontSize(int(currentFontSize))
}

var (
	fontSource    *text.GoTextFaceSource // goregular, parsed once
	fontFace      text.Face
	largeFontFace *text.GoTextFace // panel titles
)

func loadFontSource() *text.GoTextFaceSource {
	if fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("Failed to load font source: %v", err)
			return nil
		}
		fontSource = source
	}
	return fontSource
}

// buildFaces replaces both faces for the current size and DPI. The faces are
// swapped in place: widgets hold &fontFace, so it must never become nil
// while a rebuild is pending.
func buildFaces() {
	source := loadFontSource()
	if source == nil {
		return
	}
	fontFace = &text.GoTextFace{
		Source: source,
		Size:   currentFontSize * dpiScale,
	}
	largeFontFace = &text.GoTextFace{
		Source: source,
		Size:   min(currentFontSize*2, baseMaxLargeFontSize) * dpiScale,
	}
}

// FontFace returns the font face to use for UI text
func FontFace() *text.Face {
	if fontFace == nil {
		buildFaces()
	}
	return &fontFace
}

// LargeFontFace returns the face used for panel titles
func LargeFontFace() *text.GoTextFace {
	if largeFontFace == nil {
		buildFaces()
	}
	return largeFontFace
}

// FontScale returns the current font scale factor relative to the base size (14pt).
func FontScale() float64 {
	return currentFontSize / baseFontSize
}

// ApplyFontSize sets the font size and recalculates all font-dependent layout values.
func ApplyFontSize(size int) {
	currentFontSize = float64(size)
	buildFaces()
	HUDBarHeight = int(baseHUDBarHeight * FontScale() * dpiScale)
}

// PanelImage returns the translucent background used by HUD panels
func PanelImage() *image.NineSlice {
	bg := OverlayBackground
	bg.A = 200
	return image.NewNineSliceColor(bg)
}

// BarImage returns the background for the status bar
func BarImage() *image.NineSlice {
	bg := Surface
	bg.A = 220
	return image.NewNineSliceColor(bg)
}
