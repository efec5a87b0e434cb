package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soundwave/internal/models"
)

type songRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageURL"`
	SongURL  string `json:"songURL"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	ArtistID string `json:"artistId"`
	AlbumID  string `json:"albumId"`
	Language string `json:"language"`
	Genre    string `json:"genre"`
}

func (r songRequest) fields() models.SongFields {
	return models.SongFields{
		Name:     r.Name,
		ImageURL: r.ImageURL,
		SongURL:  r.SongURL,
		Artist:   r.Artist,
		Album:    r.Album,
		ArtistID: r.ArtistID,
		AlbumID:  r.AlbumID,
		Language: r.Language,
		Genre:    r.Genre,
	}
}

type likeRequest struct {
	UserID string `json:"userId"`
}

type commentRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

func (h *Handler) SaveSong(c *gin.Context) {
	var req songRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	song, err := h.catalog.SaveSong(c.Request.Context(), req.fields())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Song saved successfully", "song": song})
}

func (h *Handler) GetSong(c *gin.Context) {
	song, err := h.catalog.GetSong(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

func (h *Handler) ListSongs(c *gin.Context) {
	songs, err := h.catalog.ListSongs(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *Handler) UpdateSong(c *gin.Context) {
	var req songRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	song, err := h.catalog.UpdateSong(c.Request.Context(), c.Param("id"), req.fields())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Song updated successfully", "song": song})
}

func (h *Handler) DeleteSong(c *gin.Context) {
	song, err := h.catalog.DeleteSong(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Song deleted successfully", "song": song})
}

// LikeSong toggles the like of the user named in the body.
func (h *Handler) LikeSong(c *gin.Context) {
	var req likeRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	liked, err := h.catalog.ToggleLike(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "User unliked the song"
	if liked {
		message = "User liked the song"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "likes": liked})
}

func (h *Handler) CommentSong(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	song, err := h.catalog.AddComment(c.Request.Context(), c.Param("id"), req.UserID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment added successfully", "song": song})
}
