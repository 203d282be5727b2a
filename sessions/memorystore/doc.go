// Package memorystore provides an in-memory sessions.Store suitable for
// single-process servers. All state is ephemeral and discarded on process
// exit.
//
// Characteristics
//
//	Durability        : none (RAM only)
//	Horizontal scale  : no (process local)
//	Eviction          : none, the registry grows with every session created
//	Concurrency       : safe (RWMutex)
//
// Example:
//
//	store := memorystore.New()
//	// the router wires this store into streaminghttp.New(...)
package memorystore
