// Package runtime ties the reactive store, the update scheduler, and
// the reconciler together into a component lifecycle.
//
// An Instance owns a frozen props snapshot, a reactive state node, a
// ref map, and child instances. Any state or prop change arms a
// debounced render; bursts coalesce into one render, renders are
// deferred while the user is interacting with the component's subtree,
// and a fresh render that is structurally equal to the mounted tree
// touches nothing. Destroy tears everything down transitively and makes
// late scheduling calls safe no-ops.
//
// All construction takes an explicit Context: ID generation, logging,
// timers, and the component registry have no ambient global state.
package runtime
