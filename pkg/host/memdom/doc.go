// Package memdom is an in-memory implementation of the host contracts.
//
// It backs the runtime's tests and the preview server: a plain element
// tree with attributes, capture/bubble event dispatch, and a manually
// advanced clock so debounce behavior can be tested deterministically.
package memdom
