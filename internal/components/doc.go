// Package components is quill's terminal design system: adaptive colour
// tokens, spacing and type scales, and the small set of widgets the splash
// screen is built from.
//
// Styles are created on a RenderContext. Every colour is a
// lipgloss.AdaptiveColor, so the same component renders its light or dark
// variant depending on the renderer's background, which the theme engine
// keeps in sync:
//
//	ctx := components.RenderContext{Renderer: renderer}
//	toggle := components.NewThemeToggle(engine)
//	fmt.Println(toggle.ViewWithContext(ctx))
package components
