// Package vdom is the render-output representation the reconciler works
// on: a small tree of elements and text with typed event-binding and
// ref descriptors.
//
// Components build trees with the element helpers (Div, Button, ...) or
// hand back markup text, which Parse turns into the same representation.
// Equal decides whether two trees are semantically identical, so the
// runtime can skip DOM replacement for re-renders that change nothing.
package vdom
