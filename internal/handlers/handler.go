// Package handlers exposes the catalog, auth and playlist services over gin.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"soundwave/internal/middleware"
	"soundwave/internal/monitoring"
	"soundwave/internal/services"
)

// Handler bundles the services every route needs.
type Handler struct {
	auth          *services.Auth
	catalog       *services.Catalog
	playlists     *services.Playlists
	monitor       *monitoring.Service
	logger        *log.Logger
	cookieSecure  bool
	monitoringKey string
	version       string
}

type Options struct {
	Auth          *services.Auth
	Catalog       *services.Catalog
	Playlists     *services.Playlists
	Monitor       *monitoring.Service
	Logger        *log.Logger
	CookieSecure  bool
	MonitoringKey string
	Version       string
}

func New(opts Options) *Handler {
	return &Handler{
		auth:          opts.Auth,
		catalog:       opts.Catalog,
		playlists:     opts.Playlists,
		monitor:       opts.Monitor,
		logger:        opts.Logger,
		cookieSecure:  opts.CookieSecure,
		monitoringKey: opts.MonitoringKey,
		version:       opts.Version,
	}
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindAuth:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// logInternal records faults that are hidden behind the generic message.
func (h *Handler) logInternal(c *gin.Context, err error) {
	if services.KindOf(err) != services.KindInternal {
		return
	}
	_ = c.Error(err)
	h.logger.Error("request failed",
		"request_id", middleware.RequestIDFromContext(c),
		"route", c.FullPath(),
		"err", err,
	)
}

// respondError writes the {message} error body.
func (h *Handler) respondError(c *gin.Context, err error) {
	h.respondErrorStatus(c, statusFor(services.KindOf(err)), err)
}

func (h *Handler) respondErrorStatus(c *gin.Context, status int, err error) {
	h.logInternal(c, err)
	c.JSON(status, gin.H{"message": services.MessageOf(err)})
}

// respondLegacyError writes the {success: false, msg} body used by the
// artist, album and playlist-songs routes.
func (h *Handler) respondLegacyError(c *gin.Context, err error) {
	h.logInternal(c, err)
	c.JSON(statusFor(services.KindOf(err)), gin.H{"success": false, "msg": services.MessageOf(err)})
}

// bindJSON decodes the request body into dst. An empty body leaves dst at
// its zero value so the service reports the missing fields.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	return err == nil || errors.Is(err, io.EOF)
}

const invalidBody = "Invalid request body"
