package debug

import (
	"fmt"
	"runtime"

	"corebell/internal/scene"
)

// updateInterval: only refresh the text every N frames to reduce allocations.
const updateInterval = 30

// Debug holds the overlay toggles and the cached overlay text. The graphics
// loop draws Lines at the top-right of the screen.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowScene    bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastScene    string
	memStats     runtime.MemStats
	readMem      func(*runtime.MemStats)
}

// New returns a Debug system with the scene line on and the rest hidden.
func New() *Debug {
	return &Debug{ShowScene: true, readMem: runtime.ReadMemStats}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap allocation counter is drawn under FPS.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Lines returns the enabled overlay lines for this frame: FPS, heap size and
// a scene summary (object count, selection, transform mode, simulation state).
// Text is only recomputed every updateInterval frames.
func (d *Debug) Lines(fps int32, ed *scene.Editor) []string {
	d.frameCount++
	update := d.frameCount%updateInterval == 1
	var out []string
	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", fps)
		}
		out = append(out, d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			d.readMem(&d.memStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		out = append(out, d.lastMemText)
	}
	if d.ShowScene && ed != nil {
		if update || d.lastScene == "" {
			sim := "paused"
			if ed.Simulating() {
				sim = "running"
			}
			d.lastScene = fmt.Sprintf("Objects: %d  Selected: %d  Mode: %s  Physics: %s",
				ed.Registry.Len(), ed.Selection.Len(), ed.Transform.Mode(), sim)
		}
		out = append(out, d.lastScene)
	}
	return out
}
