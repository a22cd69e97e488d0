// Package sequence provides a monotonic request sequence guard.
//
// Each outgoing request takes a number from Next. When its response arrives,
// the caller asks the guard whether the response may still be applied, so a
// slow response can never overwrite the result of a newer request.
package sequence

import "sync/atomic"

// Guard issues increasing sequence numbers and tracks the newest applied one.
// The zero value is ready to use.
type Guard struct {
	issued  atomic.Uint64
	applied atomic.Uint64
}

// Next issues the next sequence number.
func (g *Guard) Next() uint64 {
	return g.issued.Add(1)
}

// IsLatest reports whether seq is the most recently issued number.
func (g *Guard) IsLatest(seq uint64) bool {
	return seq == g.issued.Load()
}

// Apply records seq as applied if it is newer than every previously applied
// number and reports whether it was recorded.
func (g *Guard) Apply(seq uint64) bool {
	for {
		cur := g.applied.Load()
		if seq <= cur {
			return false
		}
		if g.applied.CompareAndSwap(cur, seq) {
			return true
		}
	}
}

// Applied returns the newest applied sequence number.
func (g *Guard) Applied() uint64 {
	return g.applied.Load()
}
