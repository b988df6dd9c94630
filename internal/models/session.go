package models

import "time"

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether now is past the session's expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Slot is the single overwritable record behind pending verification and
// password reset.
type Slot struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}
