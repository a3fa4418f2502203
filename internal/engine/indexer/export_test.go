package indexer

import "time"

// SetClock replaces the time source used to stamp snapshots.
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}
