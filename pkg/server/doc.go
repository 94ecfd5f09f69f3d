// Package server is the preview server for glint components.
//
// It server-renders the root component for first paint, then mounts a
// live instance per WebSocket session on an in-memory host document.
// Client events are forwarded into that document; every committed
// render streams the fresh HTML back. Session state is snapshotted to
// a storage.SnapshotStore on disconnect so a reconnecting client can
// resume where it left off.
package server
