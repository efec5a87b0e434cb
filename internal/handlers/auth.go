package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soundwave/internal/middleware"
	"soundwave/internal/monitoring"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Key matching is case-insensitive, so older clients sending
// "confirmpassword" land here as well.
type forgotPasswordRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	monitoring.RecordRegistration()

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login handles user login and sets the token cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}

	startedAt := time.Now()
	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	monitoring.RecordLogin(time.Since(startedAt), err == nil)
	if err != nil {
		h.respondError(c, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"token":   session.Token,
		"user":    session.User,
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidBody})
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
