package theme

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// loadSelection is the record rule shared by Bootstrap and Engine: a valid
// record wins, anything else (absent, invalid, unreadable) yields def.
// failed is true only when the store itself errored.
func loadSelection(ctx context.Context, store ports.Storage, key string, def appearance.Selection, logger ports.Logger) (sel appearance.Selection, failed bool) {
	if store == nil {
		return def, false
	}
	value, ok, err := safeGet(store, key)
	if err != nil {
		logger.Warn(ctx, "theme record unreadable, using default", "storage_key", key, "default", string(def), "error", err)
		return def, true
	}
	if !ok {
		return def, false
	}
	sel, err = appearance.ParseSelection(value)
	if err != nil {
		logger.Warn(ctx, "ignoring invalid theme record", "storage_key", key, "value", value, "default", string(def))
		return def, false
	}
	return sel, false
}

func safeGet(store ports.Storage, key string) (value string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, ok, err = "", false, fmt.Errorf("storage panicked: %v", r)
		}
	}()
	return store.Get(key)
}

func safeSet(store ports.Storage, key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("storage panicked: %v", r)
		}
	}()
	return store.Set(key, value)
}

func safeQuery(signal ports.PreferenceSignal) (pref appearance.Preference, err error) {
	defer func() {
		if r := recover(); r != nil {
			pref, err = "", fmt.Errorf("preference signal panicked: %v", r)
		}
	}()
	pref, err = signal.Query()
	if err == nil && !pref.Valid() {
		return "", fmt.Errorf("%w: %q", appearance.ErrInvalidPreference, pref)
	}
	return pref, err
}

func safeSubscribe(signal ports.PreferenceSignal, fn func(appearance.Preference)) (unsubscribe func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			unsubscribe, err = nil, fmt.Errorf("preference signal panicked: %v", r)
		}
	}()
	unsubscribe, err = signal.Subscribe(fn)
	if err == nil && unsubscribe == nil {
		unsubscribe = func() {}
	}
	return unsubscribe, err
}
