package fulfillment

import "sync"

// activeSet tracks orders with an executor run in this process. It is a
// cheaper first gate in front of the advisory lock and must never be trusted
// across process boundaries.
type activeSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newActiveSet() *activeSet {
	return &activeSet{ids: make(map[string]struct{})}
}

// tryAdd marks an order active. Returns false when it already is.
func (s *activeSet) tryAdd(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[orderID]; ok {
		return false
	}
	s.ids[orderID] = struct{}{}
	return true
}

func (s *activeSet) remove(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, orderID)
}

func (s *activeSet) contains(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[orderID]
	return ok
}
