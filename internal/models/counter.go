// internal/models/counter.go
package models

// SequenceCounter stores the last issued value for named monotonic counters.
// Incremented in a single atomic upsert, never read-then-write.
type SequenceCounter struct {
	Name      string `gorm:"primaryKey;size:64" json:"name"`
	LastValue int64  `gorm:"not null;default:0" json:"lastValue"`
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
