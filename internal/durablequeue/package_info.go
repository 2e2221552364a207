// Package durablequeue contains helpers shared by the database-backed QueueStore implementations.
//
// This package is internal and may change without notice.
package durablequeue
