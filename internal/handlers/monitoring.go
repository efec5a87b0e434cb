package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) checkMonitoringToken(c *gin.Context) bool {
	expected := strings.TrimSpace(h.monitoringKey)
	if expected == "" || h.monitor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Monitoring API is disabled"})
		return false
	}

	provided := strings.TrimSpace(c.GetHeader("X-Monitoring-Key"))
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid monitoring key"})
		return false
	}
	return true
}

func (h *Handler) MonitorStatus(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.StatusText(c.Request.Context())})
}

func (h *Handler) MonitorCatalog(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.CatalogText(c.Request.Context())})
}

func (h *Handler) MonitorRuntime(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.RuntimeText()})
}

func (h *Handler) MonitorAll(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.AllText(c.Request.Context())})
}

func (h *Handler) MonitorHelp(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": h.monitor.HelpText()})
}

func (h *Handler) MonitorSnapshot(c *gin.Context) {
	if !h.checkMonitoringToken(c) {
		return
	}
	c.JSON(http.StatusOK, h.monitor.Snapshot(c.Request.Context()))
}
