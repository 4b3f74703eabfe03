package httpserver

import (
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// MemoryStats is the payload of the memory health endpoint.
type MemoryStats struct {
	AllocMB      float64 `json:"alloc_mb"`
	TotalAllocMB float64 `json:"total_alloc_mb"`
	SysMB        float64 `json:"sys_mb"`
	NumGC        uint32  `json:"num_gc"`
	Goroutines   int     `json:"goroutines"`
}

// healthState tracks process start for uptime reporting.
var healthState = struct {
	sync.Once
	startTime time.Time
}{}

// RegisterHealthRoutes adds the health endpoints:
//   - GET /health: status, service name, version, uptime
//   - HEAD /health: lightweight probe for load balancers
//   - GET /health/memory: runtime memory statistics
func RegisterHealthRoutes(router *gin.Engine, serviceName, version string) {
	healthState.Do(func() {
		healthState.startTime = time.Now()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
			Uptime:  formatUptime(time.Since(healthState.startTime)),
		})
	})

	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/health/memory", func(c *gin.Context) {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		c.JSON(http.StatusOK, MemoryStats{
			AllocMB:      toMB(stats.Alloc),
			TotalAllocMB: toMB(stats.TotalAlloc),
			SysMB:        toMB(stats.Sys),
			NumGC:        stats.NumGC,
			Goroutines:   runtime.NumGoroutine(),
		})
	})
}

const bytesPerMB = 1024 * 1024

func toMB(b uint64) float64 {
	return float64(b) / bytesPerMB
}

// formatUptime renders a duration as a short human-readable string such as
// "3d 4h 12m" or "52s".
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
