package dto

import "time"

// StatusCreateRequest payload for a new status check.
type StatusCreateRequest struct {
	ClientName string `json:"client_name"`
}

// StatusCheckView is the wire form of a status check.
type StatusCheckView struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
