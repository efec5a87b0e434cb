package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type corsPolicy struct {
	any     bool
	allowed map[string]struct{}
}

// newCORSPolicy parses the configured origins. "*" allows every origin
// without credentials; listed origins are echoed with credentials.
func newCORSPolicy(origins []string) (corsPolicy, error) {
	policy := corsPolicy{allowed: make(map[string]struct{})}
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			policy.any = true
			continue
		}
		normalized, err := normalizeOrigin(origin)
		if err != nil {
			return corsPolicy{}, fmt.Errorf("parse origin %q: %w", origin, err)
		}
		if normalized != "" {
			policy.allowed[normalized] = struct{}{}
		}
	}
	return policy, nil
}

func normalizeOrigin(origin string) (string, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return "", nil
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("origin must include scheme and host")
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(parsed.Scheme), strings.ToLower(parsed.Host)), nil
}

func (p corsPolicy) allows(origin string) bool {
	return p.any || p.listed(origin)
}

func (p corsPolicy) listed(origin string) bool {
	normalized, err := normalizeOrigin(origin)
	if err != nil || normalized == "" {
		return false
	}
	_, ok := p.allowed[normalized]
	return ok
}

// CORSMiddleware answers preflight requests and rejects origins outside the
// allow-list with 403.
func CORSMiddleware(origins []string, logger *log.Logger) (gin.HandlerFunc, error) {
	policy, err := newCORSPolicy(origins)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" {
			c.Next()
			return
		}

		if !policy.allows(origin) {
			logger.Warn("blocked CORS origin", "origin", origin, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "origin not allowed"})
			return
		}

		h := c.Writer.Header()
		if policy.listed(origin) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				h.Set("Access-Control-Allow-Headers", requested)
			} else {
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}, nil
}
