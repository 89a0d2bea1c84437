package ports

import (
	"context"
	"time"
)

// SystemInfo is a read-only snapshot of host metrics for the admin view.
type SystemInfo struct {
	Hostname      string    `json:"hostname"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	NumCPU        int       `json:"num_cpu"`
	NumGoroutines int       `json:"num_goroutines"`
	MemAllocBytes uint64    `json:"mem_alloc_bytes"`
	MemSysBytes   uint64    `json:"mem_sys_bytes"`
}

// SystemInfoProvider produces metric snapshots. The real producer is an
// external collaborator; the API consumes it read-only.
type SystemInfoProvider interface {
	Snapshot(ctx context.Context) (SystemInfo, error)
}
