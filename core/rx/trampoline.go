package rx

import "sync/atomic"

// trampoline runs step again for every request made while a step is
// running, so a synchronous source finishing inside step does not recurse.
type trampoline struct {
	wip atomic.Int32
}

func (t *trampoline) run(step func()) {
	if t.wip.Add(1) != 1 {
		return
	}
	for {
		step()
		if t.wip.Add(-1) == 0 {
			return
		}
	}
}
