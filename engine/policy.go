package engine

import "sync/atomic"

// Policy collects the build-time configuration knobs spec section 6
// describes as mutually exclusive compile-time feature-flag pairs
// (mem_safe, aw_safe, sng_ind_safe/unsafe, rng_ind_safe/unsafe,
// sng_ind_atomic). Go has no conditional compilation matching the
// teacher's feature-flag style, so each pair collapses into a single
// bool here: true selects the "_safe" member of the pair, false its
// "_unsafe" counterpart. That makes "both set" or "neither set"
// unrepresentable, which is the intent behind the mutual-exclusion
// rule in the first place.
type Policy struct {
	// MemSafe names the mem_safe knob. Pack, sort and the other
	// primitives here write disjoint slice indices with plain
	// bounds-checked stores and have no raw-pointer fast path, and no
	// code in this module reads this field.
	MemSafe bool
	// AwSafe names the aw_safe knob (atomic stores for concurrent
	// cross-thread writes). No code in this module reads this field;
	// concurrent writes to disjoint indices are plain stores either way.
	AwSafe bool
	// SngIndSafe enables the parallel duplicate-check (CAS bitmap) on
	// scatter-mutable indirection iterators. When false the caller is
	// trusted to supply pairwise-distinct offsets.
	SngIndSafe bool
	// RngIndSafe validates monotonicity and bounds of range offsets when
	// IndChunks/IndChunksMut builds the iterator instead of trusting the
	// caller.
	RngIndSafe bool
	// SngIndAtomic names the sng_ind_atomic knob (atomic slot writes for
	// permutation-style scatter). No code in this module reads this
	// field.
	SngIndAtomic bool
}

// DefaultPolicy turns on both checks the iterators read (SngIndSafe and
// RngIndSafe) and sets MemSafe; AwSafe and SngIndAtomic stay off.
var DefaultPolicy = Policy{
	MemSafe:    true,
	AwSafe:     false,
	SngIndSafe: true,
	RngIndSafe: true,
}

var current atomic.Pointer[Policy]

func init() {
	p := DefaultPolicy
	current.Store(&p)
}

// SetPolicy installs a new global policy. It performs no validation:
// each mutually exclusive pair is a single bool, so a policy with both or
// neither member of a pair cannot be built in the first place.
func SetPolicy(p Policy) {
	current.Store(&p)
}

// Current returns the active policy.
func Current() Policy {
	return *current.Load()
}
