// Package catalog renders the design tokens of the component library as
// plain documentation tables.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/quill/internal/components"
)

// Section names accepted by Render.
const (
	SectionColors     = "colors"
	SectionSpacing    = "spacing"
	SectionTypography = "typography"
)

var renderers = map[string]func(components.RenderContext, components.Theme) string{
	SectionColors:     Colors,
	SectionSpacing:    Spacing,
	SectionTypography: Typography,
}

// Sections returns the valid section names in display order.
func Sections() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render dispatches to the named section. An empty name renders all of them.
func Render(section string, ctx components.RenderContext, theme components.Theme) (string, error) {
	section = strings.ToLower(strings.TrimSpace(section))
	if section == "" {
		parts := make([]string, 0, len(renderers))
		for _, name := range Sections() {
			parts = append(parts, renderers[name](ctx, theme))
		}
		return strings.Join(parts, "\n"), nil
	}

	render, ok := renderers[section]
	if !ok {
		return "", fmt.Errorf("unknown catalog section %q (valid: %s)", section, strings.Join(Sections(), ", "))
	}
	return render(ctx, theme), nil
}

// Colors lists the semantic slots with both variants, then the fixed colour
// families shade by shade.
func Colors(ctx components.RenderContext, theme components.Theme) string {
	swatch := func(c string) string {
		return ctx.NewStyle().Background(lipglossColor(c)).Render("  ")
	}

	t := newTable("slot", "role", "light", "", "dark", "")
	p := theme.Palette
	slots := []struct {
		name string
		set  components.ColourSet
	}{
		{"brand", p.Brand},
		{"accent", p.Accent},
		{"surface", p.Surface},
		{"success", p.Success},
		{"danger", p.Danger},
		{"neutral", p.Neutral},
	}
	for _, slot := range slots {
		roles := []struct {
			name  string
			light string
			dark  string
		}{
			{"base", slot.set.Base.Light, slot.set.Base.Dark},
			{"on-base", slot.set.OnBase.Light, slot.set.OnBase.Dark},
			{"muted", slot.set.Muted.Light, slot.set.Muted.Dark},
		}
		for _, role := range roles {
			t.row(slot.name, role.name, role.light, swatch(role.light), role.dark, swatch(role.dark))
		}
	}

	families := newTable(append([]string{"family"}, components.ShadeNames[:]...)...)
	for _, family := range theme.Families {
		cells := []string{family.Name}
		for i := range components.ShadeNames {
			c := string(family.Color(components.PaletteShade(i)))
			cells = append(cells, swatch(c)+" "+c)
		}
		families.row(cells...)
	}

	return heading(ctx, "Colors") + "\n" + t.String() + "\n" + families.String()
}

// Spacing lists the spacing scale with a bar as wide as each step.
func Spacing(ctx components.RenderContext, theme components.Theme) string {
	t := newTable("token", "cells", "")
	for i, name := range components.SpacingNames {
		cells := theme.Spacing[i]
		t.row(name, strconv.Itoa(cells), strings.Repeat("█", cells))
	}
	return heading(ctx, "Spacing") + "\n" + t.String()
}

// Typography shows a sample line per variant.
func Typography(ctx components.RenderContext, theme components.Theme) string {
	t := newTable("variant", "sample")
	for _, v := range components.TypographyVariants {
		style := ctx.NewStyle().Inherit(theme.Typography.For(v.Variant))
		t.row(v.Name, style.Render("The quick brown fox"))
	}
	return heading(ctx, "Typography") + "\n" + t.String()
}

func heading(ctx components.RenderContext, title string) string {
	return ctx.NewStyle().Bold(true).Underline(true).Render(title)
}
