package durablequeue

import (
	"fmt"
	"sync"
	"time"
)

// SequenceKeyLength is the length of the keys returned by Sequencer.Next.
const SequenceKeyLength = 20

// Sequencer generates increasing sort keys for records in a database that orders items by key.
//
// Keys are based on the clock, so that records enqueued by different processes sharing one database are
// ordered approximately by time. Within one Sequencer, every key is greater than the previous one even
// if the clock goes backward. Keys are zero-padded decimal strings, so string order is numeric order.
type Sequencer struct {
	last int64
	now  func() time.Time
	lock sync.Mutex
}

// NewSequencer creates a Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{now: time.Now}
}

// Next returns a new key.
func (s *Sequencer) Next() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	n := s.now().UnixNano()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return fmt.Sprintf("%0*d", SequenceKeyLength, n)
}

// NextN returns n new keys in increasing order.
func (s *Sequencer) NextN(n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = s.Next()
	}
	return ret
}
