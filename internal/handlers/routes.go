package handlers

import (
	"github.com/gin-gonic/gin"
)

// Mount registers every route on router. requireAuth guards the write
// routes and the playlist routes.
func (h *Handler) Mount(router gin.IRouter, requireAuth gin.HandlerFunc) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.GET("/status", h.Status)

	monitor := api.Group("/monitor")
	monitor.GET("/status", h.MonitorStatus)
	monitor.GET("/catalog", h.MonitorCatalog)
	monitor.GET("/runtime", h.MonitorRuntime)
	monitor.GET("/all", h.MonitorAll)
	monitor.GET("/help", h.MonitorHelp)
	monitor.GET("/snapshot", h.MonitorSnapshot)

	user := api.Group("/user")
	user.POST("/signup", h.Register)
	user.POST("/login", h.Login)
	user.POST("/forgotpassword", h.ForgotPassword)

	user.POST("/saveArtist", requireAuth, h.SaveArtist)
	user.GET("/getOneArtist/:id", h.GetArtist)
	user.GET("/getAllArtist", h.ListArtists)
	user.DELETE("/deleteArtist/:id", requireAuth, h.DeleteArtist)
	user.PUT("/updateArtist/:id", requireAuth, h.UpdateArtist)

	user.POST("/saveAlbum", requireAuth, h.SaveAlbum)
	user.GET("/getOneAlbum/:id", h.GetAlbum)
	user.GET("/getAllAlbum", h.ListAlbums)
	user.DELETE("/deleteAlbum/:id", requireAuth, h.DeleteAlbum)
	user.PUT("/updateAlbum/:id", requireAuth, h.UpdateAlbum)
	user.POST("/saveSongToAlbum/:id", requireAuth, h.AddSongToAlbum)

	user.POST("/saveSong", requireAuth, h.SaveSong)
	user.GET("/getOneSong/:id", h.GetSong)
	user.GET("/getAllSongs", h.ListSongs)
	user.DELETE("/deleteSong/:id", requireAuth, h.DeleteSong)
	user.PUT("/updateSong/:id", requireAuth, h.UpdateSong)
	user.POST("/likeSong/:id", h.LikeSong)
	user.POST("/commentSong/:id", h.CommentSong)

	playlists := user.Group("", requireAuth)
	playlists.POST("/createPlaylist/:userId", h.CreatePlaylist)
	playlists.GET("/getUserPlaylists/:userId", h.GetUserPlaylists)
	playlists.PUT("/addSongToPlaylist/:playlistId", h.AddSongToPlaylist)
	playlists.PUT("/removeSongFromPlaylist/:playlistId", h.RemoveSongFromPlaylist)
	playlists.GET("/getSongInPlaylist/:playlistId", h.GetSongsInPlaylist)
	playlists.DELETE("/deletePlaylist/:id", h.DeletePlaylist)
	playlists.PUT("/playlists/:playlistId", h.RenamePlaylist)
}
