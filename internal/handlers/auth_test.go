package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterSuccess(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodPost, "/api/user/signup", map[string]string{
		"name":     "Ada",
		"email":    "Ada@Example.com",
		"password": "Secret123",
	}, "")
	mustStatus(t, resp.Code, http.StatusCreated)
	expectMessage(t, resp, "User created successfully")

	if strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("response leaks password field: %s", resp.Body.String())
	}
	user, _ := decode(t, resp)["user"].(map[string]any)
	if user["email"] != "ada@example.com" {
		t.Fatalf("expected normalized email, got %v", user["email"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := setupTestServer(t, "")
	s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodPost, "/api/user/signup", map[string]string{
		"name":     "Ada again",
		"email":    "ADA@example.com",
		"password": "Secret123",
	}, "")
	mustStatus(t, resp.Code, http.StatusConflict)
	expectMessage(t, resp, "User already exists")
}

func TestRegisterEmptyBody(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodPost, "/api/user/signup", nil, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "All fields are required")
}

func TestRegisterMalformedBody(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodPost, "/api/user/signup", "not an object", "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "Invalid request body")
}

func TestLoginSetsCookie(t *testing.T) {
	s := setupTestServer(t, "")
	s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodPost, "/api/user/login", map[string]string{
		"email":    "ada@example.com",
		"password": "Secret123",
	}, "")
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "User logged in successfully")

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected token cookie")
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if token, _ := decode(t, resp)["token"].(string); token != cookie.Value {
		t.Fatal("cookie value should match response token")
	}
}

func TestLoginFailures(t *testing.T) {
	s := setupTestServer(t, "")
	s.signUp(t, "ada@example.com")

	tests := []struct {
		name     string
		body     map[string]string
		status   int
		expected string
	}{
		{"missing fields", map[string]string{"email": "ada@example.com"}, http.StatusBadRequest, "All fields are required"},
		{"unknown user", map[string]string{"email": "bob@example.com", "password": "Secret123"}, http.StatusNotFound, "User does not exist"},
		{"wrong password", map[string]string{"email": "ada@example.com", "password": "nope"}, http.StatusUnauthorized, "Invalid password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, http.MethodPost, "/api/user/login", tt.body, "")
			mustStatus(t, resp.Code, tt.status)
			expectMessage(t, resp, tt.expected)
		})
	}
}

func TestForgotPassword(t *testing.T) {
	s := setupTestServer(t, "")
	s.signUp(t, "ada@example.com")

	resp := s.do(t, http.MethodPost, "/api/user/forgotpassword", map[string]string{
		"email":           "ada@example.com",
		"password":        "NewSecret1",
		"confirmPassword": "Different1",
	}, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "Passwords do not match")

	resp = s.do(t, http.MethodPost, "/api/user/forgotpassword", map[string]string{
		"email":           "ada@example.com",
		"password":        "NewSecret1",
		"confirmpassword": "NewSecret1",
	}, "")
	expectHTTP200(t, resp.Code)
	expectMessage(t, resp, "Password reset successful")

	resp = s.do(t, http.MethodPost, "/api/user/login", map[string]string{
		"email":    "ada@example.com",
		"password": "Secret123",
	}, "")
	mustStatus(t, resp.Code, http.StatusUnauthorized)

	resp = s.do(t, http.MethodPost, "/api/user/login", map[string]string{
		"email":    "ada@example.com",
		"password": "NewSecret1",
	}, "")
	expectHTTP200(t, resp.Code)
}

func TestForgotPasswordUnknownUser(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodPost, "/api/user/forgotpassword", map[string]string{
		"email":           "ghost@example.com",
		"password":        "NewSecret1",
		"confirmPassword": "NewSecret1",
	}, "")
	mustStatus(t, resp.Code, http.StatusNotFound)
	expectMessage(t, resp, "User does not exist")
}

func TestRegisterPasswordTooLong(t *testing.T) {
	s := setupTestServer(t, "")

	resp := s.do(t, http.MethodPost, "/api/user/signup", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": strings.Repeat("a", 73),
	}, "")
	mustStatus(t, resp.Code, http.StatusBadRequest)
	expectMessage(t, resp, "Password must be at most 72 bytes")
}

func TestLoginCookieIsNotACredential(t *testing.T) {
	s := setupTestServer(t, "")
	_, token := s.signUp(t, "ada@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/user/saveArtist",
		strings.NewReader(`{"name":"Nina","imageURL":"https://img.example/nina.png"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://evil.example")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp := httptest.NewRecorder()
	s.router.ServeHTTP(resp, req)

	mustStatus(t, resp.Code, http.StatusUnauthorized)
	expectMessage(t, resp, "Token is missing")
}
