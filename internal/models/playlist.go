package models

import (
	"time"
)

type Playlist struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	UserID    string    `json:"userId" bson:"userId" db:"user_id"`
	Songs     []string  `json:"songs" bson:"songs" db:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// PopulatedPlaylist is a playlist with its song references resolved. Songs
// that no longer exist are left out.
type PopulatedPlaylist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	Songs     []Song    `json:"songs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Populate pairs the playlist with already resolved songs.
func (p Playlist) Populate(songs []Song) PopulatedPlaylist {
	if songs == nil {
		songs = []Song{}
	}
	return PopulatedPlaylist{
		ID:        p.ID,
		Name:      p.Name,
		UserID:    p.UserID,
		Songs:     songs,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
