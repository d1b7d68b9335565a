package util

// Queue is a basic FIFO container that automatically removes the oldest element
// whenever it becomes full. The game server resends a sliding window of log
// lines with every snapshot, so the client remembers the recent ones to avoid
// duplicating them in its transcript.
type Queue struct {
	data    []string
	maxSize int
}

func NewQueue(maxSize int) *Queue {
	return &Queue{
		data:    make([]string, 0),
		maxSize: maxSize,
	}
}

func (q *Queue) Push(item string) {
	q.data = append(q.data, item)
	if len(q.data) > q.maxSize {
		q.data = q.data[1:]
	}
}

// PushUnique pushes the item only if it is not already remembered.
// Returns true if the item was pushed.
func (q *Queue) PushUnique(item string) bool {
	if q.Contains(item) {
		return false
	}
	q.Push(item)
	return true
}

func (q *Queue) Contains(item string) bool {
	for _, s := range q.data {
		if s == item {
			return true
		}
	}
	return false
}

func (q *Queue) Len() int {
	return len(q.data)
}
