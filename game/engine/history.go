package engine

// MoveLog is the append-only, chronological list of applied moves
type MoveLog []MoveRecord

// Append adds a record to the end of the log
func (l *MoveLog) Append(record MoveRecord) {
	*l = append(*l, record)
}

// Len returns the number of records
func (l MoveLog) Len() int {
	return len(l)
}

// Last returns the most recent record, or nil if the log is empty
func (l MoveLog) Last() *MoveRecord {
	if len(l) == 0 {
		return nil
	}
	last := l[len(l)-1]
	return &last
}

// Entries returns a copy of the log so callers can not rewrite history
func (l MoveLog) Entries() []MoveRecord {
	return append([]MoveRecord{}, l...)
}
