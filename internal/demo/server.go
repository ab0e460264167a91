package demo

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/AaaBinfinity/PortSentry/internal/state"
)

const (
	busyInterval = 2 * time.Second
	idleInterval = 30 * time.Second

	// quiet cycles before the scanner backs off to the idle cadence
	idleAfterQuietCycles = 5
)

// Server serves the monitoring API backed by the synthetic generator
// and the sqlite alert store.
type Server struct {
	generator *Generator
	alerts    *AlertStore
	logger    *log.Logger

	mu          sync.Mutex
	latest      state.PortSnapshot
	quietCycles int
}

// NewServer wires the demo backend together.
func NewServer(generator *Generator, alerts *AlertStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{generator: generator, alerts: alerts, logger: logger}
}

// Run starts the scan loop and blocks serving HTTP until the listener
// fails or ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.scanLoop(ctx)

	router := s.Router()
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("demo backend listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Router builds the HTTP surface the client polls.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.GET("/api/port-status", s.handlePortStatus)
	router.GET("/api/alerts", s.handleAlerts)
	router.GET("/api/system-info", s.handleSystemInfo)
	router.POST("/api/resolve-alert/:id", s.handleResolveAlert)
	return router
}

// scanLoop regenerates the snapshot on an adaptive cadence: fast while
// ports are churning, slow once several cycles pass without changes.
func (s *Server) scanLoop(ctx context.Context) {
	s.scanOnce(ctx)
	for {
		interval := busyInterval
		s.mu.Lock()
		if s.quietCycles >= idleAfterQuietCycles {
			interval = idleInterval
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			s.scanOnce(ctx)
		}
	}
}

func (s *Server) scanOnce(ctx context.Context) {
	snapshot := s.generator.Next(time.Now())

	s.mu.Lock()
	s.latest = snapshot
	if snapshot.Changes.Empty() {
		s.quietCycles++
	} else {
		s.quietCycles = 0
	}
	s.mu.Unlock()

	if alerts := AlertsFor(snapshot.Changes, time.Now()); len(alerts) > 0 {
		if err := s.alerts.Insert(ctx, alerts); err != nil {
			s.logger.Printf("store alerts: %v", err)
		}
	}
}

func (s *Server) handlePortStatus(c *gin.Context) {
	s.mu.Lock()
	snapshot := s.latest
	s.mu.Unlock()
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleAlerts(c *gin.Context) {
	alerts, err := s.alerts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if raw := c.Query("resolved"); raw != "" {
		if want, err := strconv.ParseBool(raw); err == nil {
			filtered := make([]state.Alert, 0, len(alerts))
			for _, alert := range alerts {
				if alert.Resolved == want {
					filtered = append(filtered, alert)
				}
			}
			alerts = filtered
		}
	}
	if alerts == nil {
		alerts = []state.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleSystemInfo(c *gin.Context) {
	info := state.SystemInfo{Load: map[string]float64{}}

	if avg, err := load.Avg(); err == nil {
		info.Load["1min"] = avg.Load1
		info.Load["5min"] = avg.Load5
		info.Load["15min"] = avg.Load15
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info.System.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.System.MemoryPercent = vm.UsedPercent
		info.System.MemoryUsed = float64(vm.Used)
		info.System.MemoryTotal = float64(vm.Total)
	}
	if usage, err := disk.Usage("/"); err == nil {
		info.System.DiskUsage = usage.UsedPercent
	}
	if boot, err := host.BootTime(); err == nil {
		bootAt := time.Unix(int64(boot), 0)
		info.System.BootTime = bootAt.Format(timeLayout)
		info.System.UptimeSeconds = int(time.Since(bootAt).Seconds())
	}
	if users, err := host.Users(); err == nil {
		names := make([]string, 0, len(users))
		for _, u := range users {
			names = append(names, u.User)
		}
		info.System.Users = names
	}

	c.JSON(http.StatusOK, info)
}

func (s *Server) handleResolveAlert(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "invalid alert id"})
		return
	}
	found, err := s.alerts.Resolve(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
