package telemetry

// Log is a capacity-bounded, drop-newest record log. It is not safe for
// concurrent use; a dispatcher owns exactly one.
type Log struct {
	records []Record
	dropped uint64
}

// NewLog preallocates a log holding up to capacity records. A capacity
// below one is raised to one.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{records: make([]Record, 0, capacity)}
}

// Append adds r and reports true, or counts a drop and reports false when
// the log is full.
func (l *Log) Append(r Record) bool {
	if len(l.records) == cap(l.records) {
		l.dropped++
		return false
	}
	l.records = append(l.records, r)
	return true
}

// Len returns the number of stored records.
func (l *Log) Len() int { return len(l.records) }

// Cap returns the fixed capacity.
func (l *Log) Cap() int { return cap(l.records) }

// Dropped returns the number of records refused since creation. Clear does
// not reset it.
func (l *Log) Dropped() uint64 { return l.dropped }

// At returns the i-th record in append order.
func (l *Log) At(i int) Record { return l.records[i] }

// Records returns a copy of the stored records in append order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Clear removes every record and keeps the capacity.
func (l *Log) Clear() {
	clear(l.records)
	l.records = l.records[:0]
}
