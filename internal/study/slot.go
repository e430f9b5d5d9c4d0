package study

import "sync"

// Slot guards one action so at most one request is outstanding. A caller
// takes a Ticket before issuing the request and hands it back with Finish
// when the result arrives. Finish reports whether the result is still
// wanted: a ticket that was superseded in the meantime is stale and its
// result must be dropped.
type Slot struct {
	mu      sync.Mutex
	current uint64
	busy    bool
}

// Ticket identifies one request issued through a Slot.
type Ticket struct {
	id uint64
}

// Begin takes a ticket, or returns ErrBusy while another is outstanding.
func (s *Slot) Begin() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return Ticket{}, ErrBusy
	}
	s.current++
	s.busy = true
	return Ticket{id: s.current}, nil
}

// Supersede takes a ticket unconditionally. Any outstanding ticket becomes
// stale.
func (s *Slot) Supersede() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	s.busy = true
	return Ticket{id: s.current}
}

// Finish releases the slot if t is current and reports whether t was
// current. Finishing a stale ticket leaves the slot untouched.
func (s *Slot) Finish(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.id == 0 || t.id != s.current || !s.busy {
		return false
	}
	s.busy = false
	return true
}

// Cancel makes any outstanding ticket stale and frees the slot.
func (s *Slot) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	s.busy = false
}

// Busy reports whether a request is outstanding.
func (s *Slot) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
