// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. The password is stored only as
// an argon2id hash and is never serialized.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
