package progress

import "sync"

// Tracker is the percentage cell shared between a foreground stream
// drainer and a background reporter goroutine. The percentage never
// decreases within one invocation.
type Tracker struct {
	mu   sync.Mutex
	pct  int
	done bool
}

func (t *Tracker) Set(pct int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pct > t.pct {
		t.pct = pct
	}
}

func (t *Tracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pct
}

// Finish tells the reporter to stop; it exits within one polling interval.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
}

func (t *Tracker) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
