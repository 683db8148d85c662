package toast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration applies when the caller does not pick one.
const DefaultDuration = 3 * time.Second

// Record is one active notification. A zero Duration never expires.
// Records are not modified after Display returns them.
type Record struct {
	ID       string
	Message  string
	Variant  Variant
	Duration time.Duration
	Created  time.Time

	token uint64
}

// Queue owns the ordered list of active records. It is not safe for
// concurrent use; Bubble Tea serialises every call through Update.
type Queue struct {
	seq     uint64
	records []Record
	now     func() time.Time
	newUUID func() string
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		now:     time.Now,
		newUUID: uuid.NewString,
	}
}

// Display appends a record with a fresh id and cancellation token. A
// negative duration is treated as zero.
func (q *Queue) Display(message string, variant Variant, duration time.Duration) Record {
	if duration < 0 {
		duration = 0
	}
	q.seq++
	rec := Record{
		ID:       fmt.Sprintf("toast-%d-%s", q.seq, q.newUUID()),
		Message:  message,
		Variant:  variant,
		Duration: duration,
		Created:  q.now(),
		token:    q.seq,
	}
	q.records = append(q.records, rec)
	return rec
}

// Remove deletes the record with the given id. Removing an unknown id is a
// no-op that reports false.
func (q *Queue) Remove(id string) bool {
	idx := q.indexOf(id)
	if idx < 0 {
		return false
	}
	q.records[idx].token = 0
	q.records = append(q.records[:idx:idx], q.records[idx+1:]...)
	return true
}

// Expire is the timer-driven removal. It only succeeds while the record is
// still present with the token its timer was armed with.
func (q *Queue) Expire(id string, token uint64) bool {
	idx := q.indexOf(id)
	if idx < 0 || token == 0 || q.records[idx].token != token {
		return false
	}
	return q.Remove(id)
}

// List returns a snapshot of the active records in insertion order.
func (q *Queue) List() []Record {
	out := make([]Record, len(q.records))
	copy(out, q.records)
	return out
}

func (q *Queue) Len() int {
	return len(q.records)
}

// Newest returns the most recently displayed active record.
func (q *Queue) Newest() (Record, bool) {
	if len(q.records) == 0 {
		return Record{}, false
	}
	return q.records[len(q.records)-1], true
}

func (q *Queue) indexOf(id string) int {
	for i := range q.records {
		if q.records[i].ID == id {
			return i
		}
	}
	return -1
}
