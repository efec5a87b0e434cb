package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soundwave/internal/services"
)

type playlistNameRequest struct {
	Name string `json:"name"`
}

// CreatePlaylist creates a playlist owned by the :userId path parameter.
func (h *Handler) CreatePlaylist(c *gin.Context) {
	var req playlistNameRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	playlist, err := h.playlists.Create(c.Request.Context(), c.Param("userId"), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Playlist created successfully", "playlist": playlist})
}

func (h *Handler) GetUserPlaylists(c *gin.Context) {
	playlists, err := h.playlists.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

// AddSongToPlaylist answers a duplicate add with 400, not 409.
func (h *Handler) AddSongToPlaylist(c *gin.Context) {
	var req songIDRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	playlist, err := h.playlists.AddSong(c.Request.Context(), c.Param("playlistId"), req.SongID)
	if err != nil {
		if services.KindOf(err) == services.KindConflict {
			h.respondErrorStatus(c, http.StatusBadRequest, err)
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Song added to playlist", "playlist": playlist})
}

func (h *Handler) RemoveSongFromPlaylist(c *gin.Context) {
	var req songIDRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	playlist, err := h.playlists.RemoveSong(c.Request.Context(), c.Param("playlistId"), req.SongID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Song removed from playlist", "playlist": playlist})
}

func (h *Handler) GetSongsInPlaylist(c *gin.Context) {
	songs, err := h.playlists.ListSongs(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "songs": songs})
}

func (h *Handler) DeletePlaylist(c *gin.Context) {
	if err := h.playlists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted successfully"})
}

func (h *Handler) RenamePlaylist(c *gin.Context) {
	var req playlistNameRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}
	playlist, err := h.playlists.Rename(c.Request.Context(), c.Param("playlistId"), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Playlist renamed successfully", "playlist": playlist})
}
