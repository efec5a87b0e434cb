package models

import (
	"time"
)

// Comment is owned by its song and never changes once appended.
type Comment struct {
	UserID    string    `json:"userId" bson:"userId" db:"user_id"`
	Text      string    `json:"text" bson:"text" db:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp" db:"created_at"`
}

// Song keeps the free-text artist and album names alongside the optional
// ArtistID/AlbumID references.
type Song struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	ImageURL  string    `json:"imageURL" bson:"imageURL" db:"image_url"`
	SongURL   string    `json:"songURL" bson:"songURL" db:"song_url"`
	Artist    string    `json:"artist" bson:"artist" db:"artist"`
	Album     string    `json:"album,omitempty" bson:"album,omitempty" db:"album"`
	ArtistID  string    `json:"artistId,omitempty" bson:"artistId,omitempty" db:"artist_id"`
	AlbumID   string    `json:"albumId,omitempty" bson:"albumId,omitempty" db:"album_id"`
	Language  string    `json:"language" bson:"language" db:"language"`
	Genre     string    `json:"genre,omitempty" bson:"genre,omitempty" db:"genre"`
	Likes     []string  `json:"likes" bson:"likes" db:"-"`
	Comments  []Comment `json:"comments" bson:"comments" db:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// SongFields is the mutable part of a song, used by save and edit.
type SongFields struct {
	Name     string
	ImageURL string
	SongURL  string
	Artist   string
	Album    string
	ArtistID string
	AlbumID  string
	Language string
	Genre    string
}
