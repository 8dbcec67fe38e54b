package bitset

import "golang.org/x/sys/cpu"

// hasPOPCNT reports whether the running CPU has a hardware population
// count instruction. It does not change which code path PopCount takes
// (math/bits already emits POPCNT on platforms that support it); it
// exists so the CLI's -timing report can note which counting strategy is
// in effect for a run, the same diagnostic role cpu.X86.HasAVX2 plays for
// simd.Memchr's dispatch in the regex engine this module was adapted from.
var hasPOPCNT = cpu.X86.HasPOPCNT

// HasHardwarePopcount reports whether math/bits.OnesCount is backed by a
// native POPCNT instruction on this machine.
func HasHardwarePopcount() bool {
	return hasPOPCNT
}
