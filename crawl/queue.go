// Package crawl — FIFO queue with deduplication.
// Maintains a visited set to avoid processing the same document twice.
package crawl

// Queue is a FIFO queue with ID deduplication.
type Queue struct {
	items   []string
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues an ID if it hasn't been seen before. It reports whether
// the ID was new.
func (q *Queue) Add(id string) bool {
	if q.visited[id] {
		return false
	}
	q.visited[id] = true
	q.items = append(q.items, id)
	return true
}

// HasNext returns true if there are unprocessed IDs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed ID and advances the pointer.
func (q *Queue) Next() string {
	id := q.items[q.idx]
	q.idx++
	return id
}

// Visited returns the total number of unique IDs seen.
func (q *Queue) Visited() int {
	return len(q.visited)
}

// All returns all discovered IDs in insertion order.
func (q *Queue) All() []string {
	return q.items
}
