package models

import (
	"time"
)

type Artist struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	ImageURL  string    `json:"imageURL" bson:"imageURL" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// Album holds song references, not songs. The same song id may appear more
// than once.
type Album struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	ImageURL  string    `json:"imageURL" bson:"imageURL" db:"image_url"`
	Songs     []string  `json:"songs" bson:"songs" db:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}
