// Package theme decides which appearance quill renders and keeps the
// presentation root in step with that decision for the whole session.
//
// Two writers share one derivation rule: Bootstrap runs once before the first
// frame, then Engine owns the state until it is stopped.
package theme

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

// DefaultStorageKey is the record name used when none is configured.
const DefaultStorageKey = "quill-theme"

// Options configures the engine. Empty Default, Fallback and StorageKey take
// their DefaultOptions values; TrackSystem is used as given.
type Options struct {
	Default     appearance.Selection
	StorageKey  string
	TrackSystem bool
	Fallback    appearance.Preference
}

// DefaultOptions follows the system appearance and falls back to light.
func DefaultOptions() Options {
	return Options{
		Default:     appearance.DefaultSelection,
		StorageKey:  DefaultStorageKey,
		TrackSystem: true,
		Fallback:    appearance.PreferenceLight,
	}
}

// Validate checks the enumerations and the storage key.
func (o Options) Validate() error {
	if o.Default != "" && !o.Default.Valid() {
		return qerrors.NewValidationError("theme.default", fmt.Sprintf("%q is not one of light, dark, system", o.Default), appearance.ErrInvalidSelection)
	}
	if o.Fallback != "" && !o.Fallback.Valid() {
		return qerrors.NewValidationError("theme.fallback", fmt.Sprintf("%q is not one of light, dark", o.Fallback), appearance.ErrInvalidPreference)
	}
	if o.StorageKey != "" && strings.TrimSpace(o.StorageKey) == "" {
		return qerrors.NewValidationError("theme.storage_key", "must not be blank", nil)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if !o.Default.Valid() {
		o.Default = appearance.DefaultSelection
	}
	if !o.Fallback.Valid() {
		o.Fallback = appearance.PreferenceLight
	}
	if strings.TrimSpace(o.StorageKey) == "" {
		o.StorageKey = DefaultStorageKey
	}
	return o
}

// BootstrapOptions returns the subset of o the early bootstrap needs.
func (o Options) BootstrapOptions() BootstrapOptions {
	return BootstrapOptions{Default: o.Default, StorageKey: o.StorageKey, Fallback: o.Fallback}
}

// Environment bundles the platform ports. Storage and Signal both nil means a
// headless context: nothing is read, written, or subscribed to.
type Environment struct {
	Storage ports.Storage
	Signal  ports.PreferenceSignal
	Surface ports.Surface
}

// Headless reports whether the environment has no platform access at all.
func (e Environment) Headless() bool {
	return e.Storage == nil && e.Signal == nil
}

// State is a consistent snapshot of the engine.
type State struct {
	Selection  appearance.Selection  `json:"selection"`
	Preference appearance.Preference `json:"preference"`
	Effective  appearance.Effective  `json:"effective"`
	Tracking   bool                  `json:"tracking"`
}
