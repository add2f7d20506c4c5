package components

import (
	"strings"
)

// AlertVariant selects an alert's tone.
type AlertVariant int

const (
	AlertVariantInfo AlertVariant = iota
	AlertVariantSuccess
	AlertVariantError
)

// Alert represents a message alert component
type Alert struct {
	title   string
	message string
	variant AlertVariant
}

// NewAlert creates a new alert with the given message and variant
func NewAlert(message string, variant AlertVariant) *Alert {
	return &Alert{message: message, variant: variant}
}

// WithTitle sets the alert title
func (a *Alert) WithTitle(title string) *Alert {
	a.title = title
	return a
}

// View renders the alert with the default renderer.
func (a *Alert) View() string {
	return a.ViewWithContext(RenderContext{})
}

// ViewWithContext renders the alert on ctx's renderer.
func (a *Alert) ViewWithContext(ctx RenderContext) string {
	var content []string
	if a.title != "" {
		content = append(content, Style(ctx.NewStyle(), Typography(TypographyVariantEmphasis)).Render(a.title))
	}
	if a.message != "" {
		content = append(content, a.message)
	}
	return Style(ctx.NewStyle(), alertVariantAppliers(a.variant)...).Render(strings.Join(content, "\n"))
}

func alertVariantAppliers(variant AlertVariant) []StyleApplier {
	switch variant {
	case AlertVariantSuccess:
		return AlertSuccessStyle()
	case AlertVariantError:
		return AlertErrorStyle()
	default:
		return AlertInfoStyle()
	}
}

// SuccessAlert creates a success alert
func SuccessAlert(message string) *Alert {
	return NewAlert(message, AlertVariantSuccess).WithTitle("✓ Done")
}

// ErrorAlert creates an error alert
func ErrorAlert(message string) *Alert {
	return NewAlert(message, AlertVariantError).WithTitle("✗ Something went wrong")
}

// InfoAlert creates an info alert
func InfoAlert(message string) *Alert {
	return NewAlert(message, AlertVariantInfo)
}
