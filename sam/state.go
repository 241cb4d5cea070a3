// Package sam implements a suffix automaton over token streams.
//
// A suffix automaton is the minimal deterministic automaton recognizing
// every suffix of an indexed token stream; each state corresponds to an
// equivalence class of substrings sharing the same set of end-positions
// ("endpos"). This package builds such an automaton incrementally (one
// token at a time, amortized O(1) per token), navigates it during lookup,
// and uses it to produce speculative draft continuations — either a single
// linear sequence or a best-first frontier tree — for a batched
// tree-attention decoding step.
//
// States live in an append-only arena (Automaton.states); all
// cross-references (suffix links, transition targets) are arena indices,
// never pointers, so the automaton has no cycles to worry about during
// garbage collection and is trivially introspectable.
package sam

// Token identifies a single vocabulary entry. Non-negative by convention;
// NoToken is reserved as the sentinel occupying input_ids[0].
type Token = int32

// NoToken is the sentinel value for "no token" — it occupies input_ids[0]
// so that position 1 corresponds to the first real token. It is not the
// padding value for a linear draft that runs past the end of the indexed
// stream; see padToken.
const NoToken Token = -1

// padToken is the right-pad value for a truncated linear draft. Tree drafts
// are never padded: a search that runs out of branches returns a smaller
// tree.
// It is intentionally distinct from NoToken:
// NoToken marks the unused stream slot, padToken is what the decoder sees
// when a draft can't be filled to its requested length.
const padToken Token = 0

// StateIndex is an index into an Automaton's state arena. State 0 is always
// the initial state; NoLink marks the absence of a suffix link (only ever
// true for state 0).
type StateIndex = int32

// InitialState is the arena index of the automaton's initial state. It is
// immutable after construction: Link == NoLink, Length == 0.
const InitialState StateIndex = 0

// NoLink marks the absence of a suffix link. Only State 0 has this link.
const NoLink StateIndex = -1

// State is one arena entry of a suffix automaton.
//
// Invariants:
//   - For every non-initial state s, Length(Link(s)) < Length(s), and the
//     suffix-link chain reaches state 0 in finitely many hops.
//   - If Transitions[p][t] == q then Length(p)+1 <= Length(q).
//   - MinEndpos never decreases after it is first set, except that a clone
//     inherits the original's MinEndpos verbatim.
//   - CntEndpos is updated only by the ancestor walk performed during
//     construction (see Automaton.AddState).
type State struct {
	// Transitions maps a token to the child state reached by consuming it.
	// Key order is irrelevant; only membership and target matter.
	Transitions map[Token]StateIndex

	// Link is the suffix-link target: the state representing the longest
	// proper suffix of this state's substrings that belongs to a different
	// equivalence class. NoLink only for the initial state.
	Link StateIndex

	// Length is the length of the longest substring ending at this state.
	Length int32

	// MinEndpos is the smallest 1-based end-position, into the indexed
	// stream, over all occurrences of any substring this state represents.
	MinEndpos int32

	// CntEndpos is the size of the endpos set: how many times any
	// substring represented by this state occurs in the indexed stream.
	CntEndpos int32
}

// clone returns a State with an independently-owned Transitions map so that
// later mutation of the source state (or of further clones of it) cannot
// corrupt this one. Scalar fields are value types and copy trivially; only
// the map needs a deep copy.
func (s State) clone() State {
	next := make(map[Token]StateIndex, len(s.Transitions))
	for k, v := range s.Transitions {
		next[k] = v
	}
	s.Transitions = next
	return s
}
