package models

import (
	"time"
)

// User represents a registered listener. Password holds the bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Email     string    `json:"email" bson:"email" db:"email"`
	Password  string    `json:"-" bson:"password" db:"password"`
	Playlists []string  `json:"playlists" bson:"playlists" db:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}
