package domain

import "time"

// StatusCheck records a client ping. Rows are append-only, ids and
// timestamps are assigned server-side.
type StatusCheck struct {
	ID         string
	ClientName string
	Timestamp  time.Time
}
