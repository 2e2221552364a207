// Package memqueue contains the default in-memory implementation of subsystems.QueueStore.
//
// Application code cannot access this package directly; it is created with otcomponents.InMemoryQueue().
package memqueue
