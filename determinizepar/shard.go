package determinizepar

import (
	"hash/fnv"
	"sync"

	"github.com/coregx/detmin/automaton"
	"github.com/coregx/detmin/bitset"
)

// localID names a subset state within the shard that first discovered
// it. A (shard, sequence) pair is smaller and simpler to reason about
// than a truncated random id, and -- unlike a UUID truncated to fit a
// machine word -- it cannot collide: two different shards never hand out
// the same pair, and a single shard's sequence only ever increases.
type localID struct {
	shard int
	seq   uint64
}

// localTransition is a (source, symbol, destination) triple expressed in
// shard-local ids, recorded by whichever shard expanded the source
// subset. It is rewritten to global StateIDs during the merge phase.
type localTransition struct {
	src localID
	sym automaton.Symbol
	dst localID
}

// shard owns one partition of the subset→id space: a dedup map keyed by
// the subset's canonical BitSet.Key(), and a FIFO frontier of subsets
// discovered but not yet expanded. The two are guarded by independent
// mutexes that are never held together, matching the leaf-lock discipline
// dfa/lazy.Cache uses for its own state table -- any worker touching
// either structure acquires exactly one lock, does its work, and releases
// it before acquiring the other.
type shard struct {
	id int

	mapMu   sync.Mutex
	ids     map[string]localID
	sets    map[localID]bitset.BitSet
	nextSeq uint64

	frontierMu sync.Mutex
	frontier   []bitset.BitSet

	// transitions and accepts are appended to only by the single worker
	// goroutine that owns this shard, and read only after every worker
	// has joined (determinizepar.go's merge phase); neither needs a lock.
	transitions []localTransition
	accepts     []localID
}

func newShard(id int) *shard {
	return &shard{
		id:   id,
		ids:  make(map[string]localID),
		sets: make(map[localID]bitset.BitSet),
	}
}

// getOrCreate returns the local id for set on this shard, minting a fresh
// one if set hasn't been seen here before. The second result reports
// whether the id is newly minted.
func (s *shard) getOrCreate(set bitset.BitSet) (localID, bool) {
	key := set.Key()

	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if id, ok := s.ids[key]; ok {
		return id, false
	}
	id := localID{shard: s.id, seq: s.nextSeq}
	s.nextSeq++
	s.ids[key] = id
	s.sets[id] = set
	return id, true
}

// idOf looks up the local id already assigned to set on this shard. Every
// caller of idOf is expanding a subset it just popped from its own
// frontier, which this shard's getOrCreate always registers before
// pushing -- so the lookup is guaranteed to hit.
func (s *shard) idOf(set bitset.BitSet) localID {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()
	id, ok := s.ids[set.Key()]
	if !ok {
		panic("determinizepar: internal error: expanding a subset its own shard never recorded")
	}
	return id
}

func (s *shard) pushFrontier(set bitset.BitSet) {
	s.frontierMu.Lock()
	s.frontier = append(s.frontier, set)
	s.frontierMu.Unlock()
}

// popFrontier removes and returns the oldest pending subset, if any.
func (s *shard) popFrontier() (bitset.BitSet, bool) {
	s.frontierMu.Lock()
	defer s.frontierMu.Unlock()
	if len(s.frontier) == 0 {
		return bitset.BitSet{}, false
	}
	next := s.frontier[0]
	s.frontier = s.frontier[1:]
	return next, true
}

// shardFor maps a subset's canonical key to one of k shards via FNV-1a,
// the same hash dfa/lazy/state.go's StateKey uses over its sorted state
// slice -- reused here over the BitSet's own canonical byte form instead
// of a sorted StateID slice.
func shardFor(key string, k int) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum64() % uint64(k))
}
