// Package appearance defines the light/dark value types shared by the early
// bootstrap and the live theme engine, plus the single derivation rule that
// turns a user's selection and the system preference into the rendered theme.
package appearance

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSelection is returned when a value is not light, dark, or system.
	ErrInvalidSelection = errors.New("invalid theme selection")
	// ErrInvalidPreference is returned when a value is not light or dark.
	ErrInvalidPreference = errors.New("invalid appearance preference")
)

// Selection is the user's explicit theme intent.
type Selection string

const (
	SelectionLight  Selection = "light"
	SelectionDark   Selection = "dark"
	SelectionSystem Selection = "system"
)

// DefaultSelection is used when nothing else is configured.
const DefaultSelection = SelectionSystem

// Selections lists every valid selection in display order.
func Selections() []Selection {
	return []Selection{SelectionLight, SelectionDark, SelectionSystem}
}

// Valid reports whether s is one of the enumerated selections.
func (s Selection) Valid() bool {
	switch s {
	case SelectionLight, SelectionDark, SelectionSystem:
		return true
	default:
		return false
	}
}

func (s Selection) String() string { return string(s) }

// ParseSelection converts a persisted or user-supplied string into a Selection.
// Matching is exact apart from surrounding whitespace; persisted records are
// always written in canonical form.
func ParseSelection(value string) (Selection, error) {
	s := Selection(strings.TrimSpace(value))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSelection, value)
	}
	return s, nil
}

// Preference is the platform-reported appearance.
type Preference string

const (
	PreferenceLight Preference = "light"
	PreferenceDark  Preference = "dark"
)

// Valid reports whether p is light or dark.
func (p Preference) Valid() bool {
	return p == PreferenceLight || p == PreferenceDark
}

func (p Preference) String() string { return string(p) }

// ParsePreference converts "light" or "dark" (case-insensitive) into a Preference.
func ParsePreference(value string) (Preference, error) {
	p := Preference(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, value)
	}
	return p, nil
}

// PreferenceFromDark maps a boolean platform answer onto a Preference.
func PreferenceFromDark(dark bool) Preference {
	if dark {
		return PreferenceDark
	}
	return PreferenceLight
}

// Effective is the theme actually rendered. It is always derived with Resolve
// and never held as independent state.
type Effective string

const (
	EffectiveLight Effective = "light"
	EffectiveDark  Effective = "dark"
)

// Dark reports whether the effective theme is dark.
func (e Effective) Dark() bool { return e == EffectiveDark }

func (e Effective) String() string { return string(e) }

// Resolve derives the effective theme. A system selection follows the
// preference; an explicit selection wins regardless of the preference. An
// invalid preference under a system selection resolves to light.
func Resolve(selection Selection, preference Preference) Effective {
	switch selection {
	case SelectionLight:
		return EffectiveLight
	case SelectionDark:
		return EffectiveDark
	}
	if preference == PreferenceDark {
		return EffectiveDark
	}
	return EffectiveLight
}

// Opposite returns the explicit selection that flips the given effective theme.
// It never returns SelectionSystem.
func Opposite(effective Effective) Selection {
	if effective == EffectiveDark {
		return SelectionLight
	}
	return SelectionDark
}
