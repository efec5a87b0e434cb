package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"soundwave/internal/models"
	"soundwave/internal/store/memory"
)

type brokenSource struct{ memory.Store }

func (*brokenSource) Ping(context.Context) error { return errors.New("connection refused") }

func TestSnapshotCountsCatalog(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	if err := st.CreateArtist(ctx, &models.Artist{ID: "507f1f77bcf86cd799439011", Name: "A", ImageURL: "a"}); err != nil {
		t.Fatalf("CreateArtist: %v", err)
	}

	svc := NewService(time.Now().Add(-time.Minute), st, "memory")
	snap := svc.Snapshot(ctx)

	if snap.ArtistsTotal != 1 || snap.SongsTotal != 0 {
		t.Fatalf("unexpected counts: %+v", snap)
	}
	if snap.StoreState != "ok" || snap.StoreDriver != "memory" {
		t.Fatalf("unexpected store fields: %+v", snap)
	}
	if snap.UptimeSeconds < 59 {
		t.Fatalf("unexpected uptime %d", snap.UptimeSeconds)
	}
}

func TestStatusTextReportsStoreError(t *testing.T) {
	svc := NewService(time.Now(), &brokenSource{}, "mongo")
	text := svc.StatusText(context.Background())
	if !strings.Contains(text, "Store (mongo): error: connection refused") {
		t.Fatalf("unexpected status text:\n%s", text)
	}
}

func TestRequestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestMetricsMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	before := getHTTPStats()
	for _, path := range []string{"/ok", "/fail", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := getHTTPStats()

	if after.Total-before.Total != 3 {
		t.Fatalf("expected 3 requests, got %d", after.Total-before.Total)
	}
	if after.ServerErrors-before.ServerErrors != 1 || after.ClientErrors-before.ClientErrors != 1 {
		t.Fatalf("unexpected error counters: before=%+v after=%+v", before, after)
	}
	if after.Active != 0 {
		t.Fatalf("expected no active requests, got %d", after.Active)
	}
}

func TestRecordLogin(t *testing.T) {
	before := getAuthStats()
	RecordLogin(2*time.Millisecond, true)
	RecordLogin(4*time.Millisecond, false)
	after := getAuthStats()

	if after.LoginsTotal-before.LoginsTotal != 2 || after.LoginsFailed-before.LoginsFailed != 1 {
		t.Fatalf("unexpected login counters: %+v", after)
	}
	if after.AvgLoginMS <= 0 {
		t.Fatalf("expected positive average, got %f", after.AvgLoginMS)
	}
}

func TestFormatBytes(t *testing.T) {
	if got := formatBytes(512); got != "512 B" {
		t.Fatalf("got %q", got)
	}
	if got := formatBytes(1536); got != "1.50 KB" {
		t.Fatalf("got %q", got)
	}
}
