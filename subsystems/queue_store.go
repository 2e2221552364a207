package subsystems

import (
	"io"

	"github.com/optistream/go-tracking-sdk/otevents"
)

// QueueStore is an interface for the ordered store of records that are waiting to be delivered.
//
// The SDK's default implementation keeps records in memory. Durable implementations, such as
// otredis, otdynamodb and otconsul, keep them in an external database so that records survive a
// process restart.
//
// Records are matched by content, not by identity, since a store may round-trip them through
// serialization. Implementations must allow Enqueue to interleave with First and Remove from another
// goroutine without losing or duplicating records.
type QueueStore interface {
	io.Closer

	// Enqueue appends records to the end of the queue, in order. If it returns an error, none of
	// the records should be considered queued.
	Enqueue(records []otevents.WireRecord) error

	// First returns up to limit of the oldest records, oldest first, without removing them.
	First(limit int) ([]otevents.WireRecord, error)

	// Remove deletes records from the queue by content. Each given record removes at most one
	// queued record with the same content, starting from the oldest. Records that are not in the
	// queue are ignored, so calling Remove twice with the same records is safe.
	Remove(records []otevents.WireRecord) error

	// Count returns the number of records in the queue.
	Count() (int, error)
}
