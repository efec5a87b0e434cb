package handlers

import (
	"net/http"
	"testing"
)

func createPlaylist(t *testing.T, s *testServer, userID, token, name string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/user/createPlaylist/"+userID, map[string]string{"name": name}, token)
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Playlist created successfully")

	playlist, _ := decode(t, resp)["playlist"].(map[string]any)
	id, _ := playlist["id"].(string)
	if id == "" {
		t.Fatal("createPlaylist returned no id")
	}
	return id
}

func TestPlaylistFlow(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")
	first := s.saveSong(t, token, "first")
	second := s.saveSong(t, token, "second")
	playlistID := createPlaylist(t, s, userID, token, "Road trip")

	for _, songID := range []string{first, second} {
		resp := s.do(t, http.MethodPut, "/api/user/addSongToPlaylist/"+playlistID, map[string]string{"songId": songID}, token)
		expectHTTP200(t, resp.Code)
		expectMessage(t, resp, "Song added to playlist")
	}

	resp := s.do(t, http.MethodPut, "/api/user/removeSongFromPlaylist/"+playlistID, map[string]string{"songId": first}, token)
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Song removed from playlist")

	resp = s.do(t, http.MethodGet, "/api/user/getSongInPlaylist/"+playlistID, nil, token)
	expectHTTP200(t, resp.Code)
	out := decode(t, resp)
	songs, _ := out["songs"].([]any)
	if success, _ := out["success"].(bool); !success || len(songs) != 1 {
		t.Fatalf("unexpected playlist songs: %v", out)
	}
	if song, _ := songs[0].(map[string]any); song["id"] != second {
		t.Fatalf("expected remaining song %s, got %v", second, song["id"])
	}

	resp = s.do(t, http.MethodGet, "/api/user/getUserPlaylists/"+userID, nil, token)
	expectHTTP200(t, resp.Code)
	playlists, _ := decode(t, resp)["playlists"].([]any)
	if len(playlists) != 1 {
		t.Fatalf("expected 1 playlist, got %d", len(playlists))
	}
	populated, _ := playlists[0].(map[string]any)
	if resolved, _ := populated["songs"].([]any); len(resolved) != 1 {
		t.Fatalf("expected resolved songs, got %v", populated["songs"])
	}
}

func TestPlaylistRoutesRequireToken(t *testing.T) {
	s := setupTestServer(t, "")
	userID, _ := s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodGet, "/api/user/getUserPlaylists/"+userID, nil, "")
	mustStatus(t, resp.Code, http.StatusUnauthorized)
}

func TestAddSongToPlaylistDuplicate(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")
	songID := s.saveSong(t, token, "first")
	playlistID := createPlaylist(t, s, userID, token, "Mix")

	resp := s.do(t, http.MethodPut, "/api/user/addSongToPlaylist/"+playlistID, map[string]string{"songId": songID}, token)
	expectHTTP200(t, resp.Code)

	resp = s.do(t, http.MethodPut, "/api/user/addSongToPlaylist/"+playlistID, map[string]string{"songId": songID}, token)
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "Song already exists in the playlist")
}

func TestRemoveSongNotInPlaylist(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")
	songID := s.saveSong(t, token, "first")
	playlistID := createPlaylist(t, s, userID, token, "Mix")

	resp := s.do(t, http.MethodPut, "/api/user/removeSongFromPlaylist/"+playlistID, map[string]string{"songId": songID}, token)
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectMessage(t, resp, "Song not found in playlist")
}

func TestDeletedSongSkippedInPlaylist(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")
	kept := s.saveSong(t, token, "kept")
	gone := s.saveSong(t, token, "gone")
	playlistID := createPlaylist(t, s, userID, token, "Mix")

	for _, songID := range []string{kept, gone} {
		resp := s.do(t, http.MethodPut, "/api/user/addSongToPlaylist/"+playlistID, map[string]string{"songId": songID}, token)
		expectHTTP200(t, resp.Code)
	}
	resp := s.do(t, http.MethodDelete, "/api/user/deleteSong/"+gone, nil, token)
	expectHTTP200(t, resp.Code)

	resp = s.do(t, http.MethodGet, "/api/user/getSongInPlaylist/"+playlistID, nil, token)
	expectHTTP200(t, resp.Code)
	if songs, _ := decode(t, resp)["songs"].([]any); len(songs) != 1 {
		t.Fatalf("expected only the remaining song, got %v", songs)
	}
}

func TestCreatePlaylistValidation(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodPost, "/api/user/createPlaylist/"+userID, map[string]string{"name": "  "}, token)
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "Playlist name is required")

	resp = s.do(t, http.MethodPost, "/api/user/createPlaylist/bad-id", map[string]string{"name": "Mix"}, token)
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectMessage(t, resp, "User not found")
}

func TestRenameAndDeletePlaylist(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")
	playlistID := createPlaylist(t, s, userID, token, "Mix")

	resp := s.do(t, http.MethodPut, "/api/user/playlists/"+playlistID, map[string]string{"name": "Evening"}, token)
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Playlist renamed successfully")
	playlist, _ := decode(t, resp)["playlist"].(map[string]any)
	if playlist["name"] != "Evening" {
		t.Fatalf("expected renamed playlist, got %v", playlist["name"])
	}

	resp = s.do(t, http.MethodDelete, "/api/user/deletePlaylist/"+playlistID, nil, token)
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Playlist deleted successfully")

	resp = s.do(t, http.MethodDelete, "/api/user/deletePlaylist/"+playlistID, nil, token)
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectMessage(t, resp, "Playlist not found")

	resp = s.do(t, http.MethodGet, "/api/user/getSongInPlaylist/"+playlistID, nil, token)
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectLegacyError(t, resp, "Playlist not found")
}
