package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Soundwave API",
		"version": h.version,
		"status":  "operational",
	})
}
