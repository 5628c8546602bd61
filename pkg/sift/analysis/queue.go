package analysis

// Queue is a FIFO of pending token texts used by expansion filters. Its
// backing array is reused once the queue drains, so a long-lived stage only
// allocates while its largest expansion grows.
type Queue struct {
	items []string
	head  int
}

// Push appends s to the queue.
func (q *Queue) Push(s string) {
	q.items = append(q.items, s)
}

// Pop removes and returns the oldest entry.
func (q *Queue) Pop() (string, bool) {
	if q.head >= len(q.items) {
		return "", false
	}
	s := q.items[q.head]
	q.items[q.head] = ""
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return s, true
}

// Len returns the number of pending entries.
func (q *Queue) Len() int { return len(q.items) - q.head }

// Reset drops all pending entries.
func (q *Queue) Reset() {
	for i := range q.items {
		q.items[i] = ""
	}
	q.items = q.items[:0]
	q.head = 0
}
