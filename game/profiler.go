package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Profiler captures a CPU profile and an execution trace on request
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	profilesDir     string
	captureDuration time.Duration
	log             zerolog.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, log zerolog.Logger) *Profiler {
	return &Profiler{
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
		log:             log,
	}
}

// CaptureProfile starts a background capture. It returns an error if a
// capture is already running.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles dir: %w", err)
	}
	p.isProfiling = true

	baseName := fmt.Sprintf("slow-ticks-%s-%s", time.Now().Format("20060102-150405"), reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.log.Error().Err(err).Msg("cpu profile capture failed")
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.log.Error().Err(err).Msg("trace capture failed")
			}
		}()
		wg.Wait()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.log.Info().
			Str("profile", filepath.Join(p.profilesDir, baseName+".cpu.prof")).
			Uint64("heap_alloc_kb", m.HeapAlloc/1024).
			Uint32("num_gc", m.NumGC).
			Msg("profile saved, inspect with go tool pprof")
	}()
	return nil
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	file, err := os.Create(filepath.Join(p.profilesDir, baseName+".cpu.prof"))
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	file, err := os.Create(filepath.Join(p.profilesDir, baseName+".trace"))
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()
	return nil
}

// TickWatchdog measures the achieved tick rate. The simulation speed is tied
// to it, so a slow host shows up here as a slow game.
type TickWatchdog struct {
	targetTPS float64
	threshold float64 // fraction of targetTPS below which a tick rate is slow
	window    time.Duration
	grace     time.Duration // ignore the first moments after start
	cooldown  time.Duration

	started     time.Time
	windowStart time.Time
	ticks       int
	rate        float64
	lastReport  time.Time
	slowWindows int

	profiler *Profiler
	log      zerolog.Logger
	now      func() time.Time
}

// NewTickWatchdog creates a watchdog for the given target rate. profiler may
// be nil, in which case slow windows are only logged.
func NewTickWatchdog(targetTPS int, profiler *Profiler, log zerolog.Logger) *TickWatchdog {
	return newTickWatchdog(targetTPS, profiler, log, time.Now)
}

func newTickWatchdog(targetTPS int, profiler *Profiler, log zerolog.Logger, now func() time.Time) *TickWatchdog {
	t := now()
	return &TickWatchdog{
		targetTPS:   float64(targetTPS),
		threshold:   0.9,
		window:      500 * time.Millisecond,
		grace:       3 * time.Second,
		cooldown:    10 * time.Second,
		started:     t,
		windowStart: t,
		rate:        float64(targetTPS),
		profiler:    profiler,
		log:         log,
		now:         now,
	}
}

// Reset restarts measurement, used when the loop resumes after a pause
func (w *TickWatchdog) Reset() {
	t := w.now()
	w.started = t
	w.windowStart = t
	w.ticks = 0
	w.rate = w.targetTPS
}

// Rate returns the tick rate measured over the last full window
func (w *TickWatchdog) Rate() float64 {
	return w.rate
}

// SlowWindows returns how many measurement windows fell below the threshold
func (w *TickWatchdog) SlowWindows() int {
	return w.slowWindows
}

// Tick records one simulation tick
func (w *TickWatchdog) Tick() {
	w.ticks++
	t := w.now()
	elapsed := t.Sub(w.windowStart)
	if elapsed < w.window {
		return
	}
	w.rate = float64(w.ticks) / elapsed.Seconds()
	w.ticks = 0
	w.windowStart = t

	if t.Sub(w.started) < w.grace || w.rate >= w.targetTPS*w.threshold {
		return
	}
	w.slowWindows++
	if !w.lastReport.IsZero() && t.Sub(w.lastReport) < w.cooldown {
		return
	}
	w.lastReport = t
	w.log.Warn().
		Float64("tps", w.rate).
		Float64("target_tps", w.targetTPS).
		Msg("tick rate below target, game is running slow")

	if w.profiler != nil {
		if err := w.profiler.CaptureProfile(fmt.Sprintf("tps%.0f", w.rate)); err != nil {
			w.log.Debug().Err(err).Msg("profile capture skipped")
		}
	}
}
