package action

import (
	"github.com/kamstrup/intmap"
	"github.com/yohamta/donburi"
)

// Queue buffers transition requests until the end of the tick. Only the first
// request per entity per tick is accepted.
type Queue struct {
	pending  []Request
	decided  *intmap.Map[donburi.Entity, int]
	rejected int
}

func NewQueue() *Queue {
	return &Queue{decided: intmap.New[donburi.Entity, int](16)}
}

// Submit queues r. It returns false when r.Entity already has a transition this tick.
func (q *Queue) Submit(r Request) bool {
	if _, ok := q.decided.Get(r.Entity); ok {
		q.rejected++
		return false
	}
	q.decided.Put(r.Entity, len(q.pending))
	q.pending = append(q.pending, r)
	return true
}

// Decided reports whether e already has a pending transition this tick.
func (q *Queue) Decided(e donburi.Entity) bool {
	_, ok := q.decided.Get(e)
	return ok
}

// Pending returns the request queued for e, if any.
func (q *Queue) Pending(e donburi.Entity) (Request, bool) {
	i, ok := q.decided.Get(e)
	if !ok {
		return Request{}, false
	}
	return q.pending[i], true
}

func (q *Queue) Len() int { return len(q.pending) }

// Rejected counts requests dropped by the one-transition guard since creation.
func (q *Queue) Rejected() int { return q.rejected }

// Drain applies every queued request in submission order and clears the guard.
func (q *Queue) Drain(apply func(Request)) {
	pending := q.pending
	q.pending = nil
	for _, r := range pending {
		q.decided.Del(r.Entity)
	}
	for _, r := range pending {
		apply(r)
	}
}
