package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSaveArtistRequiresToken(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodPost, "/api/user/saveArtist", map[string]string{
		"name":     "Nina",
		"imageURL": "https://img.example/nina.png",
	}, "")
	mustStatus(t, resp.Code, http.StatusUnauthorized)
	expectMessage(t, resp, "Token is missing")
}

func TestSaveArtistValidation(t *testing.T) {
	s := setupTestServer(t, "")
	_, token := s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodPost, "/api/user/saveArtist", map[string]string{"name": "Nina"}, token)
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectLegacyError(t, resp, "All fields are required")
}

func TestArtistLifecycle(t *testing.T) {
	s := setupTestServer(t, "")
	_, token := s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodPost, "/api/user/saveArtist", map[string]string{
		"name":     "Nina",
		"imageURL": "https://img.example/nina.png",
	}, token)
	expectHTTP200(t, resp.Code)
	artist, _ := decode(t, resp)["artist"].(map[string]any)
	id, _ := artist["id"].(string)

	resp = s.do(t, http.MethodPut, "/api/user/updateArtist/"+id, map[string]string{
		"name":     "Nina Simone",
		"imageURL": "https://img.example/nina2.png",
	}, token)
	expectHTTP200(t, resp.Code)
	artist, _ = decode(t, resp)["artist"].(map[string]any)
	if artist["name"] != "Nina Simone" {
		t.Fatalf("expected updated name, got %v", artist["name"])
	}

	resp = s.do(t, http.MethodGet, "/api/user/getAllArtist", nil, "")
	expectHTTP200(t, resp.Code)
	data, _ := decode(t, resp)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(data))
	}

	resp = s.do(t, http.MethodDelete, "/api/user/deleteArtist/"+id, nil, token)
	expectHTTP200(t, resp.Code)
	if msg, _ := decode(t, resp)["msg"].(string); msg != "Artist deleted successfully" {
		t.Fatalf("unexpected msg %q", msg)
	}

	resp = s.do(t, http.MethodGet, "/api/user/getOneArtist/"+id, nil, "")
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectLegacyError(t, resp, "Artist not found")
}

func TestGetArtistMalformedID(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodGet, "/api/user/getOneArtist/not-an-id", nil, "")
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectLegacyError(t, resp, "Artist not found")
}

func TestAlbumSongsUseAlbumKey(t *testing.T) {
	s := setupTestServer(t, "")
	_, token := s.signUp(t, "ada@example.com")
	songID := s.saveSong(t, token, "intro")

	resp := s.do(t, http.MethodPost, "/api/user/saveAlbum", map[string]string{
		"name":     "Debut",
		"imageURL": "https://img.example/debut.png",
	}, token)
	expectHTTP200(t, resp.Code)
	album, _ := decode(t, resp)["album"].(map[string]any)
	albumID, _ := album["id"].(string)

	resp = s.do(t, http.MethodPost, "/api/user/saveSongToAlbum/"+albumID, map[string]string{"songId": songID}, token)
	expectHTTP200(t, resp.Code)
	album, _ = decode(t, resp)["album"].(map[string]any)
	songs, _ := album["songs"].([]any)
	if len(songs) != 1 || songs[0] != songID {
		t.Fatalf("unexpected album songs: %v", songs)
	}

	resp = s.do(t, http.MethodDelete, "/api/user/deleteAlbum/"+albumID, nil, token)
	expectHTTP200(t, resp.Code)

	resp = s.do(t, http.MethodDelete, "/api/user/deleteAlbum/"+albumID, nil, token)
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectLegacyError(t, resp, "Album not found")
}

func TestSongRoutes(t *testing.T) {
	s := setupTestServer(t, "")
	userID, token := s.signUp(t, "ada@example.com")
	songID := s.saveSong(t, token, "first")

	resp := s.do(t, http.MethodGet, "/api/user/getOneSong/"+songID, nil, "")
	expectHTTP200(t, resp.Code)
	if name, _ := decode(t, resp)["name"].(string); name != "first" {
		t.Fatalf("expected bare song body, got %s", resp.Body.String())
	}

	resp = s.do(t, http.MethodGet, "/api/user/getAllSongs", nil, "")
	expectHTTP200(t, resp.Code)
	var songs []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &songs); err != nil {
		t.Fatalf("expected array body: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("expected 1 song, got %d", len(songs))
	}

	resp = s.do(t, http.MethodPost, "/api/user/likeSong/"+songID, map[string]string{"userId": userID}, "")
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "User liked the song")
	if liked, _ := decode(t, resp)["likes"].(bool); !liked {
		t.Fatal("expected likes=true")
	}

	resp = s.do(t, http.MethodPost, "/api/user/likeSong/"+songID, map[string]string{"userId": userID}, "")
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "User unliked the song")

	resp = s.do(t, http.MethodPost, "/api/user/commentSong/"+songID, map[string]string{
		"userId": userID,
		"text":   "great",
	}, "")
	expectHTTP200(t, resp.Code)
	song, _ := decode(t, resp)["song"].(map[string]any)
	comments, _ := song["comments"].([]any)
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %v", comments)
	}

	resp = s.do(t, http.MethodPut, "/api/user/updateSong/"+songID, map[string]string{
		"name":     "first (remaster)",
		"imageURL": "https://img.example/first.png",
		"songURL":  "https://cdn.example/first.mp3",
		"artist":   "Someone",
		"language": "en",
	}, token)
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Song updated successfully")

	resp = s.do(t, http.MethodDelete, "/api/user/deleteSong/"+songID, nil, token)
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Song deleted successfully")

	resp = s.do(t, http.MethodDelete, "/api/user/deleteSong/"+songID, nil, token)
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectMessage(t, resp, "Song not found")
}

func TestLikeSongInvalidUser(t *testing.T) {
	s := setupTestServer(t, "")
	_, token := s.signUp(t, "ada@example.com")
	songID := s.saveSong(t, token, "first")

	resp := s.do(t, http.MethodPost, "/api/user/likeSong/"+songID, map[string]string{"userId": "nope"}, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "Invalid userId format")
}
