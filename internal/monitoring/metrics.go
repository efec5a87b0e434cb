package monitoring

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Source is the part of the store the monitor reads.
type Source interface {
	Ping(ctx context.Context) error
	CountUsers(ctx context.Context) (int64, error)
	CountArtists(ctx context.Context) (int64, error)
	CountAlbums(ctx context.Context) (int64, error)
	CountSongs(ctx context.Context) (int64, error)
	CountPlaylists(ctx context.Context) (int64, error)
}

// Service holds runtime context for monitoring and reporting.
type Service struct {
	startedAt time.Time
	source    Source
	driver    string
}

type Snapshot struct {
	TimestampUTC       string  `json:"timestamp_utc"`
	UptimeSeconds      int64   `json:"uptime_seconds"`
	StoreDriver        string  `json:"store_driver"`
	StoreState         string  `json:"store_state"`
	HTTPActiveRequests int64   `json:"http_active_requests"`
	HTTPTotalRequests  uint64  `json:"http_total_requests"`
	HTTPClientErrors   uint64  `json:"http_client_errors"`
	HTTPServerErrors   uint64  `json:"http_server_errors"`
	LoginsTotal        uint64  `json:"logins_total"`
	LoginsFailed       uint64  `json:"logins_failed"`
	LoginAvgDurationMS float64 `json:"login_avg_duration_ms"`
	RegistrationsTotal uint64  `json:"registrations_total"`
	Goroutines         int     `json:"goroutines"`
	GoMemoryAllocBytes uint64  `json:"go_memory_alloc_bytes"`
	GoMemorySysBytes   uint64  `json:"go_memory_sys_bytes"`
	GoHeapInUseBytes   uint64  `json:"go_heap_in_use_bytes"`
	GoGCCount          uint32  `json:"go_gc_count"`
	UsersTotal         int64   `json:"users_total"`
	ArtistsTotal       int64   `json:"artists_total"`
	AlbumsTotal        int64   `json:"albums_total"`
	SongsTotal         int64   `json:"songs_total"`
	PlaylistsTotal     int64   `json:"playlists_total"`
}

func NewService(startedAt time.Time, source Source, driver string) *Service {
	return &Service{startedAt: startedAt, source: source, driver: driver}
}

func (s *Service) storeState(ctx context.Context) string {
	if err := s.source.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

type counts struct {
	users, artists, albums, songs, playlists int64
}

// counts ignores individual count failures; a broken store already shows up
// in the store state line.
func (s *Service) counts(ctx context.Context) counts {
	var out counts
	out.users, _ = s.source.CountUsers(ctx)
	out.artists, _ = s.source.CountArtists(ctx)
	out.albums, _ = s.source.CountAlbums(ctx)
	out.songs, _ = s.source.CountSongs(ctx)
	out.playlists, _ = s.source.CountPlaylists(ctx)
	return out
}

func (s *Service) StatusText(ctx context.Context) string {
	uptime := time.Since(s.startedAt).Round(time.Second)
	httpStats := getHTTPStats()

	return strings.Join([]string{
		"Soundwave Server Status",
		fmt.Sprintf("Uptime: %s", uptime),
		fmt.Sprintf("Store (%s): %s", s.driver, s.storeState(ctx)),
		fmt.Sprintf("HTTP active requests: %d", httpStats.Active),
		fmt.Sprintf("HTTP total requests: %d", httpStats.Total),
		fmt.Sprintf("HTTP 4xx/5xx: %d/%d", httpStats.ClientErrors, httpStats.ServerErrors),
		fmt.Sprintf("Go goroutines: %d", runtime.NumGoroutine()),
	}, "\n")
}

func (s *Service) CatalogText(ctx context.Context) string {
	c := s.counts(ctx)
	auth := getAuthStats()

	return strings.Join([]string{
		"Soundwave Catalog",
		fmt.Sprintf("Users total: %d", c.users),
		fmt.Sprintf("Artists total: %d", c.artists),
		fmt.Sprintf("Albums total: %d", c.albums),
		fmt.Sprintf("Songs total: %d", c.songs),
		fmt.Sprintf("Playlists total: %d", c.playlists),
		fmt.Sprintf("Registrations since start: %d", auth.Registrations),
		fmt.Sprintf("Logins since start: %d (%d failed, avg %.1f ms)", auth.LoginsTotal, auth.LoginsFailed, auth.AvgLoginMS),
	}, "\n")
}

func (s *Service) RuntimeText() string {
	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	return strings.Join([]string{
		"Soundwave Runtime",
		fmt.Sprintf("Go version: %s", runtime.Version()),
		fmt.Sprintf("CPU cores: %d", runtime.NumCPU()),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
		fmt.Sprintf("Memory alloc: %s", formatBytes(int64(memory.Alloc))),
		fmt.Sprintf("Memory sys: %s", formatBytes(int64(memory.Sys))),
		fmt.Sprintf("Heap in use: %s", formatBytes(int64(memory.HeapInuse))),
		fmt.Sprintf("GC cycles: %d", memory.NumGC),
	}, "\n")
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	httpStats := getHTTPStats()
	auth := getAuthStats()
	c := s.counts(ctx)

	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	return Snapshot{
		TimestampUTC:       time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:      int64(time.Since(s.startedAt).Seconds()),
		StoreDriver:        s.driver,
		StoreState:         s.storeState(ctx),
		HTTPActiveRequests: httpStats.Active,
		HTTPTotalRequests:  httpStats.Total,
		HTTPClientErrors:   httpStats.ClientErrors,
		HTTPServerErrors:   httpStats.ServerErrors,
		LoginsTotal:        auth.LoginsTotal,
		LoginsFailed:       auth.LoginsFailed,
		LoginAvgDurationMS: auth.AvgLoginMS,
		RegistrationsTotal: auth.Registrations,
		Goroutines:         runtime.NumGoroutine(),
		GoMemoryAllocBytes: memory.Alloc,
		GoMemorySysBytes:   memory.Sys,
		GoHeapInUseBytes:   memory.HeapInuse,
		GoGCCount:          memory.NumGC,
		UsersTotal:         c.users,
		ArtistsTotal:       c.artists,
		AlbumsTotal:        c.albums,
		SongsTotal:         c.songs,
		PlaylistsTotal:     c.playlists,
	}
}

func (s *Service) HelpText() string {
	return strings.Join([]string{
		"Soundwave monitor endpoints:",
		"/api/monitor/status - server status",
		"/api/monitor/catalog - catalog and auth counters",
		"/api/monitor/runtime - Go runtime",
		"/api/monitor/all - full report",
		"/api/monitor/snapshot - JSON snapshot",
	}, "\n")
}

func (s *Service) AllText(ctx context.Context) string {
	return strings.Join([]string{
		s.StatusText(ctx),
		"",
		s.CatalogText(ctx),
		"",
		s.RuntimeText(),
	}, "\n")
}

func formatBytes(value int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(value)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", value, units[unit])
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}
