package ports

import "github.com/alexisbeaulieu97/quill/internal/domain/appearance"

// Storage is a string key/value store scoped to the current user. Get reports
// ok=false when the key has never been written.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// PreferenceSignal exposes the platform's light/dark appearance. Query is
// synchronous. Subscribe delivers changes until the returned unsubscribe func
// is called; it returns an error when change notifications are not supported.
type PreferenceSignal interface {
	Query() (appearance.Preference, error)
	Subscribe(fn func(appearance.Preference)) (unsubscribe func(), err error)
}

// Surface is the presentation root that must always mirror the effective theme.
type Surface interface {
	Apply(theme appearance.Effective)
	Clear()
}

// Marker is a hidden node recorded on the presentation root so tests can prove
// that an out-of-band step ran.
type Marker struct {
	ID     string
	TestID string
	Hidden bool
}

// MarkerSink accepts markers.
type MarkerSink interface {
	AppendMarker(m Marker)
}
