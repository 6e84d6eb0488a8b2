package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleSystemStatus reports process and host health alongside the
// engine's current history depth and storage tiers.
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"uptime_seconds": int(time.Since(s.startupTime).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"history_count":  s.service.HistoryCount(),
		"storage_tiers":  s.service.Tiers(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_used_percent"] = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   status,
	})
}
