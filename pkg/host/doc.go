// Package host defines the contracts the runtime expects from a DOM-like
// environment: element creation, attribute manipulation, event listening
// and dispatch, and a timer primitive for debouncing.
//
// The core packages only consume these interfaces. An in-memory
// implementation suitable for tests and the preview server lives in
// host/memdom; a real browser or terminal host can implement the same
// contracts without the core noticing.
package host
