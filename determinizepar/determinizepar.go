package determinizepar

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/coregx/detmin/automaton"
	"github.com/coregx/detmin/bitset"
	"github.com/coregx/detmin/closure"
	"github.com/coregx/detmin/transindex"
)

// Run converts a into an equivalent DFA using cfg.Shards independent
// workers exploring the subset-construction frontier concurrently, per
// spec.md §4.5. Up to state renumbering, the result accepts exactly the
// same language as determinize.Run(a): sharding changes only the order
// subsets are discovered and merged, never the language.
func Run(a automaton.Automaton, cfg Config) (automaton.Automaton, error) {
	if err := cfg.Validate(); err != nil {
		return automaton.Automaton{}, err
	}
	if a.Kind() == automaton.Det {
		return a, nil
	}

	idx := transindex.Build(a)
	alphabet := a.Alphabet()
	k := cfg.Shards

	shards := make([]*shard, k)
	for i := range shards {
		shards[i] = newShard(i)
	}

	var seed bitset.BitSet
	for _, s := range a.Starts() {
		seed.Set(int(s))
	}
	start := closure.Close(idx, seed)
	startShardIdx := shardFor(start.Key(), k)
	startID, _ := shards[startShardIdx].getOrCreate(start)
	if startID.seq != 0 {
		panic("determinizepar: internal error: start subset was not its shard's first discovery")
	}
	markAccepting(shards[startShardIdx], startID, start, a)
	shards[startShardIdx].pushFrontier(start)

	coord := newCoordinator(k)
	var wg sync.WaitGroup
	wg.Add(k)
	for i := 0; i < k; i++ {
		go func(sid int) {
			defer wg.Done()
			runWorker(idx, shards, sid, alphabet, a, coord)
		}(i)
	}
	wg.Wait()
	coord.close()

	return merge(shards, startID, alphabet)
}

func markAccepting(s *shard, id localID, set bitset.BitSet, a automaton.Automaton) {
	for _, acc := range a.Accepts() {
		if set.Contains(int(acc)) {
			s.accepts = append(s.accepts, id)
			return
		}
	}
}

// runWorker drains shard sid's frontier until every shard is observed
// idle. It reports a busy/idle transition to the coordinator only when
// its own status actually flips, and it checks the stop flag only in the
// branch where its own frontier was just found empty -- reading stop
// first would risk exiting while a subset this worker itself is about to
// push still needs a home.
func runWorker(idx *transindex.Index, shards []*shard, sid int, alphabet int, a automaton.Automaton, coord *coordinator) {
	s := shards[sid]
	idle := false

	for {
		next, ok := s.popFrontier()
		if ok {
			if idle {
				coord.reportBusy(sid)
				idle = false
			}
			expand(idx, shards, sid, next, alphabet, a, coord)
			continue
		}

		if !idle {
			idle = true
			coord.reportIdle(sid)
			continue
		}

		if coord.stopped() {
			return
		}
		runtime.Gosched()
	}
}

// expand computes, for every symbol, the ε-closed successor subset of u
// and records the resulting transition in shard sid's local table. A
// successor subset may belong to a different shard; expand registers it
// there (minting a fresh local id and pushing it onto that shard's own
// frontier) and proactively reports that shard busy, so a producer never
// leaves work for a shard the coordinator might already be counting idle.
func expand(idx *transindex.Index, shards []*shard, sid int, u bitset.BitSet, alphabet int, a automaton.Automaton, coord *coordinator) {
	s := shards[sid]
	uID := s.idOf(u)
	k := len(shards)

	for sym := 1; sym <= alphabet; sym++ {
		var reached bitset.BitSet
		u.IterAscending(func(q int) bool {
			for _, d := range idx.Forward(automaton.Symbol(sym), automaton.StateID(q)) {
				reached.Set(int(d))
			}
			return true
		})
		v := closure.Close(idx, reached)

		destIdx := shardFor(v.Key(), k)
		dest := shards[destIdx]
		vID, isNew := dest.getOrCreate(v)
		if isNew {
			markAccepting(s, vID, v, a)
			dest.pushFrontier(v)
			if destIdx != sid {
				coord.reportBusy(destIdx)
			}
		}

		s.transitions = append(s.transitions, localTransition{src: uID, sym: automaton.Symbol(sym), dst: vID})
	}
}

// merge flattens every shard's locally discovered subsets, transitions,
// and accepting markers into one dense automaton.Automaton, renumbering
// shard-local ids to a single ascending global id space. startLocal is
// registered first, guaranteeing the start subset keeps global id 0
// regardless of which shard discovered it or what order the shards are
// drained in here.
func merge(shards []*shard, startLocal localID, alphabet int) (automaton.Automaton, error) {
	global := make(map[localID]int)
	global[startLocal] = 0
	next := 1

	resolve := func(id localID) int {
		if g, ok := global[id]; ok {
			return g
		}
		g := next
		global[id] = g
		next++
		return g
	}

	var transitions []automaton.Transition
	var accepts []automaton.StateID
	for _, s := range shards {
		for _, t := range s.transitions {
			transitions = append(transitions, automaton.Transition{
				Src: automaton.StateID(resolve(t.src)),
				Sym: t.sym,
				Dst: automaton.StateID(resolve(t.dst)),
			})
		}
		for _, id := range s.accepts {
			accepts = append(accepts, automaton.StateID(resolve(id)))
		}
	}

	out, err := automaton.New(automaton.Det, next, alphabet, transitions, []automaton.StateID{0}, accepts)
	if err != nil {
		return automaton.Automaton{}, fmt.Errorf("determinizepar: produced invalid automaton: %w", err)
	}
	return out, nil
}
