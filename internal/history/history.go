// Package history implements the bounded status-history log: an append-only,
// newest-first list capped at a fixed number of entries, with oldest-eviction
// at capacity. The adapter layer serialises it to and from Redis; the log
// itself never touches storage.
package history

import (
	"encoding/json"
	"time"

	"jobtrack/matcher-service/internal/model"
)

// Capacity is the maximum number of retained entries.
const Capacity = 20

// Entry records one status change on a job.
type Entry struct {
	JobID     string    `json:"jobId"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is a bounded, newest-first status log.
type Log struct {
	entries []Entry
}

// New returns an empty log.
func New() *Log {
	return &Log{entries: make([]Entry, 0, Capacity)}
}

// Append records a status change at the head of the log, evicting the oldest
// entry when the log is at capacity. Non-recordable statuses are ignored.
func (l *Log) Append(job model.Job, status model.Status, at time.Time) {
	if !status.Recordable() {
		return
	}
	e := Entry{
		JobID:     job.ID,
		Title:     job.Title,
		Company:   job.Company,
		Status:    string(status),
		Timestamp: at,
	}
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > Capacity {
		l.entries = l.entries[:Capacity]
	}
}

// Entries returns the log newest-first. The returned slice is a copy.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// MarshalJSON encodes the log as a plain JSON array, newest first.
func (l *Log) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.entries)
}

// UnmarshalJSON decodes a JSON array into the log, truncating anything past
// capacity so oversized persisted blobs heal on load.
func (l *Log) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	l.entries = entries
	return nil
}
