package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"quadbounce/physics"
)

// Profiler errors
var (
	ErrProfilerCooldown = errors.New("capture on cooldown")
	ErrProfilerBusy     = errors.New("already profiling")
)

// Profiler captures a CPU profile and an execution trace when a tick runs
// over its budget
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}

	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
	}, nil
}

// ObserveTick starts a capture when elapsed exceeds budget.
// Slow ticks during cooldown or an ongoing capture are ignored.
func (p *Profiler) ObserveTick(elapsed, budget time.Duration, stats physics.Stats) {
	if elapsed <= budget {
		return
	}
	reason := fmt.Sprintf("tick%d-%dms-nodes%d-depth%d", stats.Tick, elapsed.Milliseconds(), stats.Nodes, stats.Depth)
	if err := p.CaptureProfile(reason); err == nil {
		log.Printf("tick %d took %v (budget %v), capturing profile", stats.Tick, elapsed, budget)
	}
}

// CaptureProfile captures a CPU profile and a trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("%w (last capture was %v ago)", ErrProfilerCooldown, since)
	}
	if p.isProfiling {
		return ErrProfilerBusy
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("slow-tick-%s-%s", timestamp, reason)

	go p.run(baseName)
	return nil
}

// run records the CPU profile and the trace side by side, then logs a summary
func (p *Profiler) run(baseName string) {
	defer func() {
		p.mu.Lock()
		p.isProfiling = false
		p.mu.Unlock()
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.record(baseName+".cpu.prof", pprof.StartCPUProfile, pprof.StopCPUProfile)
	}()
	go func() {
		defer wg.Done()
		p.record(baseName+".trace", trace.Start, trace.Stop)
	}()
	wg.Wait()

	p.analyzeProfile(baseName)
}

// record writes captureDuration worth of output from start/stop into name
func (p *Profiler) record(name string, start func(io.Writer) error, stop func()) {
	path := filepath.Join(p.profilesDir, name)

	file, err := os.Create(path)
	if err != nil {
		log.Printf("profiler: create %s: %v", path, err)
		return
	}
	defer file.Close()

	if err := start(file); err != nil {
		log.Printf("profiler: start %s: %v", path, err)
		return
	}
	time.Sleep(p.captureDuration)
	stop()

	log.Printf("profiler: saved %s", path)
}

// analyzeProfile logs where the capture went and the heap at that time
func (p *Profiler) analyzeProfile(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		log.Printf("Warning: could not analyze profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("profile %s (%.2f KB), view with: go tool pprof -http=:8080 %s", baseName, float64(info.Size())/1024, profilePath)
	log.Printf("memory at capture: alloc=%d KB sys=%d KB gc=%d heap objects=%d", m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}
