package models

import "time"

// Epidemic is a tracked outbreak. A nil EndDate means it is still active.
// Type is an optional category tag.
type Epidemic struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Type      *string    `json:"type" db:"type"`
	StartDate *time.Time `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date" db:"end_date"`
}

func (e Epidemic) Active() bool {
	return e.EndDate == nil
}
