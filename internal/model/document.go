package model

import "time"

// DocumentID is the provider-assigned identifier of a stored document.
type DocumentID string

// DocumentContext is the concatenated plain-text export of an ordered document
// set, rendered with per-document begin/end markers.
type DocumentContext struct {
	IDs     []DocumentID `json:"ids"`
	Text    string       `json:"text"`
	BuiltAt time.Time    `json:"built_at"`
}
