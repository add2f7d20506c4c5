// Package surface holds the presentation root that views render from and the
// adapters that keep it in step with the effective theme.
package surface

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// Root is the theme-bearing presentation root: a class list, an attribute map,
// and hidden body markers. It is safe for concurrent use.
type Root struct {
	mu      sync.RWMutex
	classes map[string]struct{}
	attrs   map[string]string
	markers []ports.Marker
	writes  int
}

// NewRoot returns an empty root.
func NewRoot() *Root {
	return &Root{
		classes: make(map[string]struct{}),
		attrs:   make(map[string]string),
	}
}

// AddClass adds a class.
func (r *Root) AddClass(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = struct{}{}
	r.writes++
}

// RemoveClass removes a class if present.
func (r *Root) RemoveClass(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[name]; ok {
		delete(r.classes, name)
		r.writes++
	}
}

// HasClass reports whether the class is set.
func (r *Root) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Classes returns the sorted class list.
func (r *Root) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for name := range r.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SetAttribute sets an attribute value.
func (r *Root) SetAttribute(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[name] = value
	r.writes++
}

// RemoveAttribute deletes an attribute.
func (r *Root) RemoveAttribute(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attrs[name]; ok {
		delete(r.attrs, name)
		r.writes++
	}
}

// Attribute returns an attribute value.
func (r *Root) Attribute(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.attrs[name]
	return v, ok
}

// AppendMarker implements ports.MarkerSink.
func (r *Root) AppendMarker(m ports.Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = append(r.markers, m)
}

// Marker looks up a marker by id.
func (r *Root) Marker(id string) (ports.Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.markers {
		if m.ID == id {
			return m, true
		}
	}
	return ports.Marker{}, false
}

// Writes counts mutations that changed the root. Tests use it to assert that
// a transition produced no side effects.
func (r *Root) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

// Effective reads the presentation state back. The theme class wins over the
// attribute; ok is false when neither carries a valid theme, or when both
// theme classes are present at once.
func (r *Root) Effective(attribute string) (appearance.Effective, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, light := r.classes[string(appearance.EffectiveLight)]
	_, dark := r.classes[string(appearance.EffectiveDark)]
	switch {
	case light && dark:
		return "", false
	case light:
		return appearance.EffectiveLight, true
	case dark:
		return appearance.EffectiveDark, true
	}

	if attribute == "" {
		return "", false
	}
	switch appearance.Effective(r.attrs[attribute]) {
	case appearance.EffectiveLight:
		return appearance.EffectiveLight, true
	case appearance.EffectiveDark:
		return appearance.EffectiveDark, true
	}
	return "", false
}

var _ ports.MarkerSink = (*Root)(nil)
