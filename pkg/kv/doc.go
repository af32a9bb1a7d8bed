// Package kv defines the persistent key-value contract the state
// container snapshots into, plus the two shipped implementations.
//
// Responsibilities:
//   - Store only gets/sets one JSON document per string key; it knows
//     nothing about the state tree.
//   - Memory backs tests and examples with a mutex-guarded map.
//   - File mirrors localStorage-style durability on disk: one JSON file
//     per key, written atomically via temp-file + rename.
//
// Best-effort semantics (write failures swallowed, reads falling back to
// defaults) belong to the persistence middleware in the root package, not
// to the stores; Store implementations report their errors honestly.
package kv
