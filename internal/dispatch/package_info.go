// Package dispatch contains the engine that queues reported events and delivers them in batches.
//
// All state of an engine is owned by a single goroutine. The public methods post messages to that
// goroutine and return immediately; transport calls run on their own goroutines and post their
// outcomes back to it, so the queue is never mutated concurrently by the engine itself.
//
// This package is internal and its types are not visible to applications.
package dispatch
