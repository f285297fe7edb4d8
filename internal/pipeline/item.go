package pipeline

import (
	"sync"
	"time"
)

// ItemStatus represents the state of one file in a batch.
type ItemStatus string

const (
	StatusQueued     ItemStatus = "queued"
	StatusProcessing ItemStatus = "processing"
	StatusCompleted  ItemStatus = "completed"
	StatusSkipped    ItemStatus = "skipped"
	StatusFailed     ItemStatus = "failed"
)

// Item tracks one input file through a batch run.
type Item struct {
	mu sync.Mutex

	Input  string
	Output string

	status    ItemStatus
	reason    string
	err       error
	updatedAt time.Time
}

func newItem(input, output string) *Item {
	return &Item{
		Input:     input,
		Output:    output,
		status:    StatusQueued,
		updatedAt: time.Now(),
	}
}

// SetStatus updates item status atomically. reason is a short note such as
// "output exists".
func (it *Item) SetStatus(status ItemStatus, reason string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.status = status
	it.reason = reason
	it.updatedAt = time.Now()
}

// Fail marks the item failed with err.
func (it *Item) Fail(err error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.status = StatusFailed
	it.err = err
	it.reason = ""
	it.updatedAt = time.Now()
}

// ItemSnapshot is a read-only copy of item state.
type ItemSnapshot struct {
	Input     string
	Output    string
	Status    ItemStatus
	Reason    string
	Err       error
	UpdatedAt time.Time
}

func (it *Item) Snapshot() ItemSnapshot {
	it.mu.Lock()
	defer it.mu.Unlock()
	return ItemSnapshot{
		Input:     it.Input,
		Output:    it.Output,
		Status:    it.status,
		Reason:    it.reason,
		Err:       it.err,
		UpdatedAt: it.updatedAt,
	}
}
