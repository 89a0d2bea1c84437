// Package sysinfo provides the host metrics snapshot consumed by the
// admin-only system-info view. The real metrics producer is an external
// collaborator; this provider stands in with process-local figures.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/opsconsole/admin-api/internal/core/ports"
)

// Provider implements ports.SystemInfoProvider from the local process.
type Provider struct {
	startedAt time.Time
}

func NewProvider() *Provider {
	return &Provider{startedAt: time.Now().UTC()}
}

func (p *Provider) Snapshot(_ context.Context) (ports.SystemInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return ports.SystemInfo{}, fmt.Errorf("hostname: %w", err)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	now := time.Now().UTC()
	return ports.SystemInfo{
		Hostname:      hostname,
		Timestamp:     now,
		UptimeSeconds: int64(now.Sub(p.startedAt).Seconds()),
		NumCPU:        runtime.NumCPU(),
		NumGoroutines: runtime.NumGoroutine(),
		MemAllocBytes: mem.Alloc,
		MemSysBytes:   mem.Sys,
	}, nil
}
