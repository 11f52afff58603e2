package tracker

// Ledger holds the owed-exercise count and the date the daily quota was last
// applied. Owed never goes negative.
type Ledger struct {
	Owed            int
	LastCheckedDate *string
}

// RecordCompletion pays off one exercise. Completions while nothing is owed
// leave the count at zero.
func (l *Ledger) RecordCompletion() {
	if l.Owed > 0 {
		l.Owed--
	}
}

// RestoreCompletions puts n exercises back on the ledger.
func (l *Ledger) RestoreCompletions(n int) {
	if n > 0 {
		l.Owed += n
	}
}

// ApplyRollover adds quota when today differs from the stored marker and
// reports whether it did.
func (l *Ledger) ApplyRollover(today string, quota int) bool {
	if l.LastCheckedDate != nil && *l.LastCheckedDate == today {
		return false
	}
	if quota > 0 {
		l.Owed += quota
	}
	l.LastCheckedDate = &today
	return true
}
