package model

import "time"

// UnansweredEntry records a question the assistant could not answer from its
// documents. Entries are appended to a flat log and never mutated.
type UnansweredEntry struct {
	AskedAt  time.Time `json:"asked_at"`
	Question string    `json:"question"`
}
