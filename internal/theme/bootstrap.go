package theme

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// Marker identifiers appended by Bootstrap.
const (
	MarkerID     = "theme-bootstrap"
	MarkerTestID = "theme-bootstrap-marker"
)

// BootstrapOptions are the static inputs of the early pass.
type BootstrapOptions struct {
	Default    appearance.Selection
	StorageKey string
	Fallback   appearance.Preference
}

// BootstrapResult reports what the early pass applied. Preference is empty
// when the selection was explicit and the signal was never queried.
type BootstrapResult struct {
	Selection  appearance.Selection  `json:"selection"`
	Preference appearance.Preference `json:"preference,omitempty"`
	Effective  appearance.Effective  `json:"effective"`
	Degraded   bool                  `json:"degraded"`
}

// Bootstrap applies the effective theme to env.Surface before anything themed
// is drawn, then leaves a hidden marker on the root. It never returns an error
// and never panics: port failures are logged and degrade to the configured
// default and fallback.
func Bootstrap(ctx context.Context, opts BootstrapOptions, env Environment, markers ports.MarkerSink, logger ports.Logger) (result BootstrapResult) {
	normalised := Options{Default: opts.Default, StorageKey: opts.StorageKey, Fallback: opts.Fallback}.withDefaults()
	logger = logging.OrNoOp(logger).With("component", "theme.bootstrap")

	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "theme bootstrap failed, applying fallback", "error", fmt.Sprint(r))
			result = fallbackResult(normalised)
			applyQuietly(ctx, env.Surface, result.Effective, logger)
		}
		appendMarker(ctx, markers, logger)
	}()

	result = resolveEarly(ctx, normalised, env, logger)
	applyQuietly(ctx, env.Surface, result.Effective, logger)
	logger.Debug(ctx, "theme bootstrapped",
		"selection", string(result.Selection),
		"preference", string(result.Preference),
		"effective", string(result.Effective),
	)
	return result
}

func resolveEarly(ctx context.Context, opts Options, env Environment, logger ports.Logger) BootstrapResult {
	var result BootstrapResult
	result.Selection, result.Degraded = loadSelection(ctx, env.Storage, opts.StorageKey, opts.Default, logger)
	if result.Selection == appearance.SelectionSystem {
		result.Preference = opts.Fallback
		if env.Signal != nil {
			pref, err := safeQuery(env.Signal)
			if err != nil {
				logger.Warn(ctx, "system appearance unavailable, using fallback", "fallback", string(opts.Fallback), "error", err)
				result.Degraded = true
			} else {
				result.Preference = pref
			}
		}
	}
	result.Effective = appearance.Resolve(result.Selection, result.Preference)
	return result
}

func fallbackResult(opts Options) BootstrapResult {
	result := BootstrapResult{Selection: opts.Default, Degraded: true}
	if opts.Default == appearance.SelectionSystem {
		result.Preference = opts.Fallback
	}
	result.Effective = appearance.Resolve(result.Selection, result.Preference)
	return result
}

func applyQuietly(ctx context.Context, surface ports.Surface, theme appearance.Effective, logger ports.Logger) {
	if surface == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "surface rejected theme", "effective", string(theme), "error", fmt.Sprint(r))
		}
	}()
	surface.Apply(theme)
}

func appendMarker(ctx context.Context, markers ports.MarkerSink, logger ports.Logger) {
	if markers == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "bootstrap marker not recorded", "error", fmt.Sprint(r))
		}
	}()
	markers.AppendMarker(ports.Marker{ID: MarkerID, TestID: MarkerTestID, Hidden: true})
}
