package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-aa/common"
)

// Stats is one reporting window of frame timing and memory figures.
type Stats struct {
	// Method is the anti-aliasing label that was active when the window closed.
	Method string

	Frames       int
	FPS          float64
	FrameTime    time.Duration
	HeapMB       float64
	AllocRateMB  float64
	SysMB        float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	MethodSwitch bool
}

// Profiler tracks frame rate and memory statistics per anti-aliasing method.
// A "frame stats" record is logged every interval; the window is restarted whenever the
// method label changes so one window never mixes two methods.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	method         string
	switched       bool
	last           Stats
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the label of the active anti-aliasing method.
//
// Parameters:
//   - method: the active method label
//
// Returns:
//   - bool: true if stats were reported this tick, false otherwise
func (p *Profiler) Tick(method string) bool {
	currentTime := p.now()

	if method != p.method {
		if p.method != "" {
			common.Logger().Info("profiler method switch", "from", p.method, "to", method)
			p.switched = true
		}
		p.method = method
		p.frameCount = 0
		p.lastTime = currentTime
		return false
	}

	p.frameCount++
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		Method:       p.method,
		Frames:       p.frameCount,
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:    elapsed / time.Duration(p.frameCount),
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:        float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:      p.memStats.NumGC,
		MethodSwitch: p.switched,
	}
	if p.memStats.TotalAlloc >= p.lastTotalAlloc {
		s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()
	}

	// PauseNs is a circular buffer of the last 256 pauses
	if gc := s.GCCount; gc > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(gc-1)%256] / 1000
		start := p.lastGCCount
		if gc-start > 256 {
			start = gc - 256
		}
		for i := start; i < gc; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	common.Logger().Info("frame stats",
		"method", s.Method,
		"fps", s.FPS,
		"frame_ms", float64(s.FrameTime.Microseconds())/1000,
		"heap_mb", s.HeapMB,
		"alloc_mb_s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.switched = false
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently reported window, or the zero Stats before the first report.
func (p *Profiler) Last() Stats {
	return p.last
}
