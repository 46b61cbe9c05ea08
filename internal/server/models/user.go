package models

import "time"

// User is a registered account. Salt and Verifier hold the salted
// password hash; the password itself is never stored.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
