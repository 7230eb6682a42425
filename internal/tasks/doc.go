// Package tasks holds the task store and its file-backed persistence.
//
// A task is identified by its description; the store maps each description
// to a completion flag and remembers insertion order. Every mutation is
// written through to a single JSON file before the call returns:
//
//	[["write report",false],["ship release",true]]
//
// The file is an array of [description, done] pairs in insertion order. It
// is always rewritten in full, never appended to.
//
// # Hydration
//
// Open builds a store and loads the backing file if it exists. The file is
// checked against the embedded JSON Schema (tasks.schema.json) before it is
// decoded. A malformed file either fails Open or yields an empty store,
// depending on OpenOptions.OnMalformed; the file itself is left untouched
// until the next mutation.
//
// # Concurrency
//
// Store has no internal locking. It is meant to be owned by one goroutine
// (the bot loop or the TUI update loop).
package tasks
