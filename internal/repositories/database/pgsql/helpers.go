package pgsql

import "time"

// nullableTime maps a zero time to SQL NULL so "no filter" date bounds drop
// out of WHERE clauses.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
