package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soundwave/internal/services"
)

type entryRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageURL"`
}

func (r entryRequest) input() services.EntryInput {
	return services.EntryInput{Name: r.Name, ImageURL: r.ImageURL}
}

type songIDRequest struct {
	SongID string `json:"songId"`
}

// legacyBind decodes a body for the {success, msg} routes.
func legacyBind(c *gin.Context, dst any) bool {
	if bindJSON(c, dst) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": invalidBody})
	return false
}

func (h *Handler) SaveArtist(c *gin.Context) {
	var req entryRequest
	if !legacyBind(c, &req) {
		return
	}
	artist, err := h.catalog.SaveArtist(c.Request.Context(), req.input())
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "artist": artist})
}

func (h *Handler) GetArtist(c *gin.Context) {
	artist, err := h.catalog.GetArtist(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "artist": artist})
}

func (h *Handler) ListArtists(c *gin.Context) {
	artists, err := h.catalog.ListArtists(c.Request.Context())
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": artists})
}

func (h *Handler) DeleteArtist(c *gin.Context) {
	if err := h.catalog.DeleteArtist(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "Artist deleted successfully"})
}

func (h *Handler) UpdateArtist(c *gin.Context) {
	var req entryRequest
	if !legacyBind(c, &req) {
		return
	}
	artist, err := h.catalog.UpdateArtist(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "artist": artist})
}

func (h *Handler) SaveAlbum(c *gin.Context) {
	var req entryRequest
	if !legacyBind(c, &req) {
		return
	}
	album, err := h.catalog.SaveAlbum(c.Request.Context(), req.input())
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "album": album})
}

func (h *Handler) GetAlbum(c *gin.Context) {
	album, err := h.catalog.GetAlbum(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "album": album})
}

func (h *Handler) ListAlbums(c *gin.Context) {
	albums, err := h.catalog.ListAlbums(c.Request.Context())
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": albums})
}

func (h *Handler) DeleteAlbum(c *gin.Context) {
	if err := h.catalog.DeleteAlbum(c.Request.Context(), c.Param("id")); err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "Album deleted successfully"})
}

func (h *Handler) UpdateAlbum(c *gin.Context) {
	var req entryRequest
	if !legacyBind(c, &req) {
		return
	}
	album, err := h.catalog.UpdateAlbum(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "album": album})
}

func (h *Handler) AddSongToAlbum(c *gin.Context) {
	var req songIDRequest
	if !legacyBind(c, &req) {
		return
	}
	album, err := h.catalog.AddSongToAlbum(c.Request.Context(), c.Param("id"), req.SongID)
	if err != nil {
		h.respondLegacyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "album": album})
}
