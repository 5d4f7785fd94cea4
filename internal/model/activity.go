package model

import (
	"time"
)

// Activity is one immutable entry in a board's history
type Activity struct {
	id          string
	description string
	when        time.Time
}

// NewActivity creates an activity entry
func NewActivity(id, description string, when time.Time) Activity {
	return Activity{id: id, description: description, when: when}
}

// ID returns the activity id
func (a Activity) ID() string {
	return a.id
}

// Description returns the human-readable description
func (a Activity) Description() string {
	return a.description
}

// When returns the activity timestamp
func (a Activity) When() time.Time {
	return a.when
}

// ActivityLog is an append-only, insertion-ordered record of board
// activity. Entries are chronological by insertion, not necessarily by
// timestamp; presentation layers wanting strict time order must sort.
type ActivityLog struct {
	activities []Activity
}

// NewActivityLog creates an empty log
func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

// Add appends an activity
func (l *ActivityLog) Add(activity Activity) {
	l.activities = append(l.activities, activity)
}

// Activities returns all entries in insertion order. Callers must not
// modify the returned slice.
func (l *ActivityLog) Activities() []Activity {
	return l.activities
}

// Size returns the number of entries
func (l *ActivityLog) Size() int {
	return len(l.activities)
}

// Empty reports whether the log has no entries
func (l *ActivityLog) Empty() bool {
	return len(l.activities) == 0
}

// Last returns the most recently appended entry, or nil if the log is
// empty.
func (l *ActivityLog) Last() *Activity {
	if len(l.activities) == 0 {
		return nil
	}
	return &l.activities[len(l.activities)-1]
}

// Clear removes all entries. The only bulk mutation the log supports.
func (l *ActivityLog) Clear() {
	l.activities = nil
}
