package components

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
)

const paletteShadeCount = 5

// PaletteShade indexes a colour family from lightest to darkest.
type PaletteShade int

const (
	PaletteShade100 PaletteShade = iota
	PaletteShade300
	PaletteShade500
	PaletteShade700
	PaletteShade900
)

// ShadeNames lists the shade labels in index order.
var ShadeNames = [paletteShadeCount]string{"100", "300", "500", "700", "900"}

// ColorFamily is a named ramp of fixed colours.
type ColorFamily struct {
	Name   string
	Shades [paletteShadeCount]lipgloss.Color
}

// Color returns the shade, or "" when out of range.
func (f ColorFamily) Color(shade PaletteShade) lipgloss.Color {
	index := int(shade)
	if index < 0 || index >= paletteShadeCount {
		return ""
	}
	return f.Shades[index]
}

// ColourSet is a semantic slot: a base colour, the text drawn on it, and a
// quieter variant. Every entry carries a light and a dark value.
type ColourSet struct {
	Base   lipgloss.AdaptiveColor
	OnBase lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor
}

// Palette describes semantic colour slots used by components.
type Palette struct {
	Brand   ColourSet
	Accent  ColourSet
	Surface ColourSet
	Success ColourSet
	Danger  ColourSet
	Neutral ColourSet
}

// SpacingSize enumerates supported spacing size tokens.
type SpacingSize int

const (
	SpacingSizeNone SpacingSize = iota
	SpacingSizeExtraSmall
	SpacingSizeSmall
	SpacingSizeMedium
	SpacingSizeLarge
	SpacingSizeExtraLarge
)

const spacingSizeCount = int(SpacingSizeExtraLarge) + 1

// SpacingNames lists the token names in size order.
var SpacingNames = [spacingSizeCount]string{"none", "xs", "sm", "md", "lg", "xl"}

type spacingTable [spacingSizeCount]int

// TypographyVariant represents a strongly-typed typography token.
type TypographyVariant int

const (
	TypographyVariantBody TypographyVariant = iota
	TypographyVariantHero
	TypographyVariantTitle
	TypographyVariantLead
	TypographyVariantCaption
	TypographyVariantCode
	TypographyVariantEmphasis
)

// TypographyVariants lists every variant with its token name.
var TypographyVariants = []struct {
	Name    string
	Variant TypographyVariant
}{
	{"hero", TypographyVariantHero},
	{"title", TypographyVariantTitle},
	{"lead", TypographyVariantLead},
	{"body", TypographyVariantBody},
	{"caption", TypographyVariantCaption},
	{"code", TypographyVariantCode},
	{"emphasis", TypographyVariantEmphasis},
}

// TypographyScale contains semantic typography presets.
type TypographyScale struct {
	Hero     lipgloss.Style
	Title    lipgloss.Style
	Lead     lipgloss.Style
	Body     lipgloss.Style
	Caption  lipgloss.Style
	Code     lipgloss.Style
	Emphasis lipgloss.Style
}

// BorderVariant selects a border from the theme.
type BorderVariant int

const (
	BorderVariantNone BorderVariant = iota
	BorderVariantNormal
	BorderVariantRounded
	BorderVariantThick
)

// BorderSet groups reusable border definitions.
type BorderSet struct {
	Normal  lipgloss.Border
	Rounded lipgloss.Border
	Thick   lipgloss.Border
}

// Theme is the quill design system: semantic palette, raw colour ramps,
// spacing, and type. Colours are adaptive; the renderer that draws a style
// decides which variant is used.
type Theme struct {
	Palette    Palette
	Families   []ColorFamily
	Borders    BorderSet
	Spacing    spacingTable
	Typography TypographyScale
}

// ThemeManager coordinates access to a Theme instance.
type ThemeManager struct {
	mu    sync.RWMutex
	theme Theme
}

// NewThemeManager allocates a ThemeManager with the provided theme.
func NewThemeManager(theme Theme) *ThemeManager {
	return &ThemeManager{theme: cloneTheme(theme)}
}

// SetTheme replaces the managed theme.
func (m *ThemeManager) SetTheme(theme Theme) {
	m.mu.Lock()
	m.theme = cloneTheme(theme)
	m.mu.Unlock()
}

// Theme returns a copy of the managed theme.
func (m *ThemeManager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTheme(m.theme)
}

func cloneTheme(theme Theme) Theme {
	theme.Families = append([]ColorFamily(nil), theme.Families...)
	return theme
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultTheme returns quill's ink-on-parchment design tokens.
func DefaultTheme() Theme {
	palette := Palette{
		Brand: ColourSet{
			Base:   ac("#4338ca", "#a5b4fc"),
			OnBase: ac("#faf7f2", "#1e1b4b"),
			Muted:  ac("#6366f1", "#818cf8"),
		},
		Accent: ColourSet{
			Base:   ac("#b45309", "#fbbf24"),
			OnBase: ac("#fffbeb", "#292524"),
			Muted:  ac("#d97706", "#f59e0b"),
		},
		Surface: ColourSet{
			Base:   ac("#faf7f2", "#17161c"),
			OnBase: ac("#1c1917", "#ede9e3"),
			Muted:  ac("#efe9df", "#26242d"),
		},
		Success: ColourSet{
			Base:   ac("#3f6212", "#a3e635"),
			OnBase: ac("#f7fee7", "#1a2e05"),
			Muted:  ac("#65a30d", "#84cc16"),
		},
		Danger: ColourSet{
			Base:   ac("#b91c1c", "#fca5a5"),
			OnBase: ac("#fef2f2", "#450a0a"),
			Muted:  ac("#dc2626", "#f87171"),
		},
		Neutral: ColourSet{
			Base:   ac("#78716c", "#a8a29e"),
			OnBase: ac("#fafaf9", "#1c1917"),
			Muted:  ac("#a8a29e", "#57534e"),
		},
	}

	families := []ColorFamily{
		{Name: "ink", Shades: [paletteShadeCount]lipgloss.Color{"#eeedf5", "#b9b6cf", "#6f6a94", "#3a355c", "#16142a"}},
		{Name: "quill", Shades: [paletteShadeCount]lipgloss.Color{"#e0e7ff", "#a5b4fc", "#6366f1", "#4338ca", "#1e1b4b"}},
		{Name: "parchment", Shades: [paletteShadeCount]lipgloss.Color{"#faf7f2", "#efe9df", "#d6cbb8", "#a08f73", "#5c4f3b"}},
		{Name: "moss", Shades: [paletteShadeCount]lipgloss.Color{"#ecfccb", "#bef264", "#84cc16", "#4d7c0f", "#1a2e05"}},
		{Name: "ember", Shades: [paletteShadeCount]lipgloss.Color{"#fee2e2", "#fca5a5", "#ef4444", "#b91c1c", "#450a0a"}},
	}

	return Theme{
		Palette:  palette,
		Families: families,
		Borders: BorderSet{
			Normal:  lipgloss.NormalBorder(),
			Rounded: lipgloss.RoundedBorder(),
			Thick:   lipgloss.ThickBorder(),
		},
		Spacing: spacingTable{
			SpacingSizeNone:       0,
			SpacingSizeExtraSmall: 1,
			SpacingSizeSmall:      2,
			SpacingSizeMedium:     3,
			SpacingSizeLarge:      4,
			SpacingSizeExtraLarge: 6,
		},
		Typography: defaultTypography(palette),
	}
}

func defaultTypography(p Palette) TypographyScale {
	base := lipgloss.NewStyle().Foreground(p.Surface.OnBase)

	return TypographyScale{
		Hero:     base.Bold(true).Foreground(p.Brand.Base),
		Title:    base.Bold(true),
		Lead:     base.Italic(true),
		Body:     base,
		Caption:  base.Foreground(p.Neutral.Base),
		Code:     base.Foreground(p.Accent.Base).Background(p.Surface.Muted).Padding(0, 1),
		Emphasis: base.Bold(true),
	}
}

// Theme variables for easy access
var defaultThemeManager = NewThemeManager(DefaultTheme())

// SetTheme sets the global theme
func SetTheme(theme Theme) {
	defaultThemeManager.SetTheme(theme)
}

// GetTheme returns the current global theme
func GetTheme() Theme {
	return defaultThemeManager.Theme()
}

// RenderContext carries the renderer styles are created on. The renderer's
// background answer picks the light or dark half of every AdaptiveColor.
type RenderContext struct {
	Renderer *lipgloss.Renderer
}

// NewStyle returns an empty style bound to the context's renderer.
func (c RenderContext) NewStyle() lipgloss.Style {
	if c.Renderer == nil {
		return lipgloss.NewStyle()
	}
	return c.Renderer.NewStyle()
}

// ContextFor returns a context that renders to w in the given theme,
// regardless of the terminal's own background.
func ContextFor(w io.Writer, theme appearance.Effective) RenderContext {
	r := lipgloss.NewRenderer(w)
	r.SetHasDarkBackground(theme.Dark())
	return RenderContext{Renderer: r}
}

// Resolve picks the concrete colour an adaptive colour takes in theme.
func Resolve(c lipgloss.AdaptiveColor, theme appearance.Effective) string {
	if theme.Dark() {
		return c.Dark
	}
	return c.Light
}

// Helper functions to access theme properties using typed variants

// PaddingValue returns the cell count for a spacing token.
func PaddingValue(size SpacingSize) int {
	return spacingLookup(GetTheme().Spacing, size)
}

func spacingLookup(table spacingTable, size SpacingSize) int {
	index := int(size)
	if index < 0 || index >= len(table) {
		index = int(SpacingSizeMedium)
	}
	return table[index]
}

// TypographyStyle returns the specified typography style from the current theme.
func TypographyStyle(variant TypographyVariant) lipgloss.Style {
	return typographyFor(GetTheme().Typography, variant)
}

// For returns the preset for variant, falling back to Body.
func (s TypographyScale) For(variant TypographyVariant) lipgloss.Style {
	return typographyFor(s, variant)
}

func typographyFor(typo TypographyScale, variant TypographyVariant) lipgloss.Style {
	switch variant {
	case TypographyVariantHero:
		return typo.Hero
	case TypographyVariantTitle:
		return typo.Title
	case TypographyVariantLead:
		return typo.Lead
	case TypographyVariantCaption:
		return typo.Caption
	case TypographyVariantCode:
		return typo.Code
	case TypographyVariantEmphasis:
		return typo.Emphasis
	default:
		return typo.Body
	}
}

// StyleApplier represents a function that can apply styling to a lipgloss.Style
type StyleApplier interface {
	Apply(base lipgloss.Style, theme Theme) lipgloss.Style
}

// StyleFunc implements StyleApplier for a function type
type StyleFunc func(lipgloss.Style, Theme) lipgloss.Style

func (fn StyleFunc) Apply(base lipgloss.Style, theme Theme) lipgloss.Style {
	return fn(base, theme)
}

// Style applies a series of modifiers to create a final style
func Style(base lipgloss.Style, appliers ...StyleApplier) lipgloss.Style {
	theme := GetTheme()
	for _, applier := range appliers {
		base = applier.Apply(base, theme)
	}
	return base
}

// PaletteSlot provides access to a semantic colour slot.
type PaletteSlot func(Palette) ColourSet

var (
	PaletteBrand   PaletteSlot = func(p Palette) ColourSet { return p.Brand }
	PaletteAccent  PaletteSlot = func(p Palette) ColourSet { return p.Accent }
	PaletteSurface PaletteSlot = func(p Palette) ColourSet { return p.Surface }
	PaletteSuccess PaletteSlot = func(p Palette) ColourSet { return p.Success }
	PaletteDanger  PaletteSlot = func(p Palette) ColourSet { return p.Danger }
	PaletteNeutral PaletteSlot = func(p Palette) ColourSet { return p.Neutral }
)

// Fluent modifier functions

// Background applies a semantic background colour and matching foreground.
func Background(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		cs := slot(theme.Palette)
		return base.Background(cs.Base).Foreground(cs.OnBase)
	}
}

// Foreground applies a semantic foreground colour.
func Foreground(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Foreground(slot(theme.Palette).Base)
	}
}

// BorderColor colours the border with a semantic slot.
func BorderColor(slot PaletteSlot) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.BorderForeground(slot(theme.Palette).Base)
	}
}

func Border(variant BorderVariant) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		switch variant {
		case BorderVariantNormal:
			return base.Border(theme.Borders.Normal)
		case BorderVariantRounded:
			return base.Border(theme.Borders.Rounded)
		case BorderVariantThick:
			return base.Border(theme.Borders.Thick)
		default:
			return base.Border(lipgloss.Border{})
		}
	}
}

func Padding(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Padding(spacingLookup(theme.Spacing, size))
	}
}

func PaddingX(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		value := spacingLookup(theme.Spacing, size)
		return base.PaddingLeft(value).PaddingRight(value)
	}
}

func MarginY(size SpacingSize) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		value := spacingLookup(theme.Spacing, size)
		return base.MarginTop(value).MarginBottom(value)
	}
}

// Typography applies typography styling
func Typography(variant TypographyVariant) StyleFunc {
	return func(base lipgloss.Style, theme Theme) lipgloss.Style {
		return base.Inherit(typographyFor(theme.Typography, variant))
	}
}

// Predefined style bundles for common component patterns

func CardBaseStyle() []StyleApplier {
	return []StyleApplier{
		Background(PaletteSurface),
		Border(BorderVariantRounded),
		BorderColor(PaletteNeutral),
		PaddingX(SpacingSizeMedium),
	}
}

func ButtonPrimaryStyle() []StyleApplier {
	return []StyleApplier{
		Background(PaletteBrand),
		PaddingX(SpacingSizeSmall),
		Typography(TypographyVariantEmphasis),
	}
}

func ButtonGhostStyle() []StyleApplier {
	return []StyleApplier{
		Foreground(PaletteBrand),
		Border(BorderVariantRounded),
		BorderColor(PaletteNeutral),
		PaddingX(SpacingSizeExtraSmall),
	}
}

func AlertSuccessStyle() []StyleApplier {
	return []StyleApplier{
		Foreground(PaletteSuccess),
		Border(BorderVariantNormal),
		BorderColor(PaletteSuccess),
		PaddingX(SpacingSizeExtraSmall),
	}
}

func AlertErrorStyle() []StyleApplier {
	return []StyleApplier{
		Foreground(PaletteDanger),
		Border(BorderVariantNormal),
		BorderColor(PaletteDanger),
		PaddingX(SpacingSizeExtraSmall),
	}
}

func AlertInfoStyle() []StyleApplier {
	return []StyleApplier{
		Foreground(PaletteBrand),
		Border(BorderVariantNormal),
		BorderColor(PaletteBrand),
		PaddingX(SpacingSizeExtraSmall),
	}
}
