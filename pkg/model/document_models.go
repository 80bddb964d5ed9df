package model

import "time"

// DocumentInfo identifies a stored canvas document. The ID is a UUID assigned
// on creation and preserved exactly across saves, loads, and exports.
type DocumentInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}
