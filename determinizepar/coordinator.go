package determinizepar

import (
	"sync/atomic"

	"github.com/coregx/detmin/internal/sparse"
)

// statusMsg is a single busy/idle transition reported by a shard worker.
// Workers only send on an actual edge (idle->busy or busy->idle), so
// channel traffic is proportional to the number of such swings, not to
// how often a worker polls its own frontier.
type statusMsg struct {
	shard int
	busy  bool
}

// coordinator runs termination detection on its own goroutine, draining a
// buffered channel of shard status transitions and deriving a stop signal
// the workers can read lock-free. It tracks the currently-busy shard ids
// in a sparse.SparseSet -- the same bounded, dense-iteration structure the
// teacher built for tracking a small universe of live NFA states,
// repurposed here to an even smaller universe: one entry per shard.
type coordinator struct {
	statusCh chan statusMsg
	stop     atomic.Bool
	done     chan struct{}
}

// newCoordinator starts the coordinator goroutine, which begins with every
// shard marked busy, since none has had a chance to observe its own
// (possibly empty) frontier yet. Workers then drive each shard's status
// through reportBusy/reportIdle.
func newCoordinator(shards int) *coordinator {
	c := &coordinator{
		statusCh: make(chan statusMsg, shards*4),
		done:     make(chan struct{}),
	}
	go c.loop(shards)
	return c
}

func (c *coordinator) loop(shards int) {
	busy := sparse.NewSparseSet(uint32(shards))
	for i := 0; i < shards; i++ {
		busy.Insert(uint32(i))
	}
	for msg := range c.statusCh {
		if msg.busy {
			busy.Insert(uint32(msg.shard))
		} else {
			busy.Remove(uint32(msg.shard))
		}
		c.stop.Store(busy.IsEmpty())
	}
	close(c.done)
}

// reportBusy records that shard is actively processing (or about to
// receive) work. A worker that pushes a newly discovered subset into a
// different shard's frontier calls this on the destination's behalf in
// the same step as the push, so the coordinator can never observe every
// shard idle while a just-pushed item sits unprocessed.
func (c *coordinator) reportBusy(shard int) { c.statusCh <- statusMsg{shard: shard, busy: true} }

// reportIdle records that shard has observed its own frontier empty.
func (c *coordinator) reportIdle(shard int) { c.statusCh <- statusMsg{shard: shard, busy: false} }

// stopped reports whether every shard is currently known to be idle. The
// flag is derived, not one-shot: it can flip back to false if a shard
// (or a producer pushing into it) reports busy again after the counter
// reached zero, which is what makes it safe for a worker to act on.
// Workers must only trust stopped() in the branch where their own
// frontier was just observed empty -- see runWorker in determinizepar.go.
func (c *coordinator) stopped() bool { return c.stop.Load() }

// close shuts the coordinator goroutine down. Callers must ensure every
// worker has already returned (e.g. via sync.WaitGroup.Wait) before
// calling this, since closing statusCh while a worker still sends on it
// would panic.
func (c *coordinator) close() {
	close(c.statusCh)
	<-c.done
}
