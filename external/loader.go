// Package external holds the two contracts the engine core talks to but
// never implements itself (spec §6): the Loader, used outside the tick
// loop to fetch assets, and the Renderer, which turns engine state into
// opaque display nodes. Neither is consulted during determinism checks.
package external

import "context"

// LoadOptions configures a single Loader.FetchData call.
type LoadOptions struct {
	// RequiredForValidation marks data the caller cannot proceed without,
	// e.g. a level definition needed to reconstruct initial object state.
	// A headless loader still fetches these; it skips everything else.
	RequiredForValidation bool
}

// Loader fetches arbitrary external data by id. Implementations return
// text as-is and encode binary payloads as a data URL. Loader is only
// ever called from outside the tick loop (setup, asset prefetch); the
// engine never calls it mid-Update.
type Loader interface {
	FetchData(ctx context.Context, id string, opts LoadOptions) (string, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, id string, opts LoadOptions) (string, error)

// FetchData implements Loader.
func (f LoaderFunc) FetchData(ctx context.Context, id string, opts LoadOptions) (string, error) {
	return f(ctx, id, opts)
}

// HeadlessLoader wraps a delegate Loader and forwards only data marked
// RequiredForValidation; everything else short-circuits to an empty
// string with no call to the delegate. This is the forwarding variant
// selected for headless deployments (servers, batch replay) that have
// no renderer and so no use for decorative or cosmetic assets, but
// still need level/config data to validate and reconstruct a recording.
type HeadlessLoader struct {
	Delegate Loader
}

// NewHeadlessLoader wraps delegate as a HeadlessLoader.
func NewHeadlessLoader(delegate Loader) *HeadlessLoader {
	return &HeadlessLoader{Delegate: delegate}
}

// FetchData implements Loader.
func (h *HeadlessLoader) FetchData(ctx context.Context, id string, opts LoadOptions) (string, error) {
	if !opts.RequiredForValidation {
		return "", nil
	}
	if h.Delegate == nil {
		return "", nil
	}
	return h.Delegate.FetchData(ctx, id, opts)
}

var _ Loader = (*HeadlessLoader)(nil)
