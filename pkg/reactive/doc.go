// Package reactive wraps plain data graphs so that reads and writes are
// observable.
//
// A Node wraps one plain map. Writes that change a value notify every
// subscribed listener with (key, newValue, oldValue) in subscription
// order; writes that don't change anything notify nobody. Nested maps
// are wrapped lazily on first read and the wrapped Node is cached in
// place, so repeated reads return the identical wrapped reference.
//
// Derived values are built with Computed (cached, invalidated by
// dependency notifications, recomputed lazily on the next read) and
// Watch (callback per change, optionally fired immediately with the
// current snapshot).
package reactive
