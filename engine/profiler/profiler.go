//go:build profile

// Package profiler records nested timing scopes into a ring buffer and
// dumps them as a speedscope capture. Without the "profile" build tag
// every call is a no-op.
package profiler

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hubastard/hazel/engine/logging"
)

const Enabled = true

// Init allocates room for capacity scope events. Older events are
// overwritten once the ring is full.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := intern(name)
	start := time.Now().UnixNano()
	ring.push(event{atNS: start, frame: id, open: true})
	return func() {
		end := max(time.Now().UnixNano(), start)
		ring.push(event{atNS: end, frame: id})
	}
}

// Dump writes the recorded scopes to DumpFile inside dir and returns its path.
func Dump(dir string) (string, error) {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return "", ErrNoEvents
	}
	path := filepath.Join(dir, DumpFile)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("profiler: create dump: %w", err)
	}
	if err := writeSpeedscope(f, names(), evs); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, os.Rename(tmp, path)
}

// Open dumps into the temp directory and launches the speedscope viewer
// when it is installed.
func Open() (string, error) {
	path, err := Dump(os.TempDir())
	if err != nil {
		return "", err
	}
	bin, err := exec.LookPath("speedscope")
	if err != nil {
		logging.Logger().Info("profile written", "path", path)
		return path, nil
	}
	cmd := exec.Command(bin, path)
	cmd.SysProcAttr = hideWindowAttr()
	if err := cmd.Start(); err != nil {
		logging.Logger().Warn("speedscope did not start", "error", err)
	}
	return path, nil
}

type eventRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []event
}

var ring eventRing

func (r *eventRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]event, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the retained events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

func names() []string {
	muFrames.Lock()
	defer muFrames.Unlock()
	return append([]string(nil), frames...)
}
