package sam

import "github.com/ruckbreasoning/samd/internal/conv"

// Cursor is the (state, matched-length) pair tracking the longest suffix of
// the tokens fed so far that also occurs in an automaton's indexed stream.
// It is kept separate from construction so that lookups interleaved with
// AddTokens observe a consistent, independently-advanceable position.
type Cursor struct {
	Index  StateIndex
	Length int32
}

// kind distinguishes the two Reset semantics: a dynamic automaton discards
// its whole arena on reset, a static one only rewinds its cursor.
type kind uint8

const (
	kindDynamic kind = iota
	kindStatic
)

// Automaton is an arena of suffix-automaton states built incrementally over
// a token stream. It also carries its own draft-generation configuration
// (maxPredicts, alpha) since both the dynamic and static variants generate
// drafts independently.
type Automaton struct {
	kind kind

	states []State

	// inputIDs is the raw token stream; inputIDs[0] is the NoToken
	// sentinel so that position i (1-based) holds the i-th real token.
	inputIDs []Token

	last      StateIndex
	maxLength int32

	cur Cursor

	maxPredicts int
	alpha       float64

	// frozen marks a static automaton as built: further mutation attempts
	// are reported via ErrStaticMutation instead of silently corrupting
	// the indexed stream.
	frozen bool
}

// ProgressFunc is invoked periodically during AddBatchTokens with the
// number of sequences processed so far and the batch total. Callers that
// want terminal progress reporting can wire a callback here; this package
// itself prints nothing.
type ProgressFunc func(done, total int)

// NewDynamic creates an empty dynamic automaton. A dynamic automaton's
// Reset discards its arena and rebuilds state 0 from scratch; it is meant
// to be rebuilt per generation as the token stream grows.
func NewDynamic(maxPredicts int, alpha float64) *Automaton {
	return newAutomaton(kindDynamic, maxPredicts, alpha)
}

// NewStatic creates an empty static automaton. A static automaton's Reset
// only rewinds its cursor; its arena, once built, is immutable.
func NewStatic(maxPredicts int, alpha float64) *Automaton {
	return newAutomaton(kindStatic, maxPredicts, alpha)
}

func newAutomaton(k kind, maxPredicts int, alpha float64) *Automaton {
	a := &Automaton{kind: k, maxPredicts: maxPredicts, alpha: alpha}
	a.initArena()
	return a
}

// initArena (re)creates the arena with just the immutable initial state.
// Capacity is pre-reserved for 2*|expected stream|+1 states, the upper
// bound on suffix-automaton size; since the expected stream length isn't
// known up front, a modest default is used and grows by Go's normal slice
// doubling thereafter.
func (a *Automaton) initArena() {
	const defaultCapacityHint = 64
	a.states = make([]State, 0, 2*defaultCapacityHint+1)
	a.states = append(a.states, State{Transitions: make(map[Token]StateIndex), Link: NoLink, Length: 0})
	a.inputIDs = make([]Token, 1, defaultCapacityHint+1)
	a.inputIDs[0] = NoToken
	a.last = InitialState
	a.maxLength = 0
	a.cur = Cursor{Index: InitialState, Length: 0}
	a.frozen = false
}

// Freeze marks the automaton as built. Subsequent AddState/AddTokens calls
// return ErrStaticMutation instead of mutating the arena. Freeze is a no-op
// concept for dynamic automata in practice (they are always rebuilt wholesale
// by Reset, never frozen) but is not itself restricted to static kind, so a
// caller scripting its own build sequence can call it regardless of kind.
func (a *Automaton) Freeze() { a.frozen = true }

// Reset restores the automaton to its post-construction state. A dynamic
// automaton discards its entire arena; a static automaton only rewinds its
// cursor, leaving the indexed corpus untouched.
func (a *Automaton) Reset() {
	if a.kind == kindDynamic {
		a.initArena()
		return
	}
	a.cur = Cursor{Index: InitialState, Length: 0}
}

// expandState appends a new state to the arena and returns its index.
func (a *Automaton) expandState(s State) StateIndex {
	a.states = append(a.states, s)
	return conv.IntToInt32(len(a.states) - 1)
}

// AddState appends one token to the indexed stream and extends the
// automaton, following the standard online suffix-automaton construction:
//
//  1. Create a new state cur with Length = maxLength+1, MinEndpos =
//     maxLength+1, CntEndpos = 0.
//  2. Walk from last via suffix links, installing a transition on t to cur
//     at every state that doesn't already have one.
//  3. If the walk exhausts all links, cur's link is state 0. Otherwise let
//     q be the state the walk found a transition to. If q already has the
//     right length, cur links to q directly; otherwise q is split: a
//     clone absorbs the short prefix of q's equivalence class and both q
//     and cur link to the clone.
//  4. last becomes cur.
//  5. Every state on cur's suffix-link chain (cur included, state 0
//     excluded) gets its CntEndpos incremented by one — this is the one
//     point at which endpos-set sizes are updated.
func (a *Automaton) AddState(t Token) error {
	if a.frozen {
		return ErrStaticMutation
	}
	a.maxLength++
	cur := a.expandState(State{
		Transitions: make(map[Token]StateIndex),
		Link:        NoLink,
		Length:      a.maxLength,
		MinEndpos:   a.maxLength,
		CntEndpos:   0,
	})

	p := a.last
	for p != NoLink {
		if _, ok := a.states[p].Transitions[t]; ok {
			break
		}
		a.states[p].Transitions[t] = cur
		p = a.states[p].Link
	}

	if p == NoLink {
		a.states[cur].Link = InitialState
	} else {
		q := a.states[p].Transitions[t]
		if a.states[p].Length+1 == a.states[q].Length {
			a.states[cur].Link = q
		} else {
			clone := a.expandState(a.states[q].clone())
			a.states[clone].Length = a.states[p].Length + 1
			for p != NoLink && a.states[p].Transitions[t] == q {
				a.states[p].Transitions[t] = clone
				p = a.states[p].Link
			}
			a.states[q].Link = clone
			a.states[cur].Link = clone
		}
	}
	a.last = cur

	for anc := cur; anc != InitialState; anc = a.states[anc].Link {
		a.states[anc].CntEndpos++
	}
	return nil
}

// AddTokens extends the automaton with each token in tokens, in order. The
// cursor is advanced *before* each AddState call so that a lookup
// interleaved with construction always sees a consistent position. An
// empty tokens slice is a no-op. On a frozen automaton AddTokens returns
// ErrStaticMutation before touching the cursor.
func (a *Automaton) AddTokens(tokens []Token) error {
	if a.frozen {
		return ErrStaticMutation
	}
	for _, t := range tokens {
		a.TransferCurState(t)
		if err := a.AddState(t); err != nil {
			return err
		}
	}
	a.inputIDs = append(a.inputIDs, tokens...)
	return nil
}

// AddBatchTokens indexes every sequence in batchTokens, appending eosToken
// to any sequence that doesn't already end with it so that draft reads
// never silently cross a document boundary. progress, if non-nil, is
// called after each sequence with (done, total).
func (a *Automaton) AddBatchTokens(batchTokens [][]Token, eosToken Token, progress ProgressFunc) error {
	for i, tokens := range batchTokens {
		if err := a.AddTokens(tokens); err != nil {
			return err
		}
		if len(tokens) == 0 || tokens[len(tokens)-1] != eosToken {
			if err := a.AddTokens([]Token{eosToken}); err != nil {
				return err
			}
		}
		if progress != nil {
			progress(i+1, len(batchTokens))
		}
	}
	return nil
}

// BuildStatic builds a static automaton over an entire corpus in one call
// and freezes it. The returned error is
// non-nil only if batchTokens somehow triggers a mutation error mid-build,
// which cannot happen through this entry point; it is surfaced anyway so
// callers scripting their own variants over a shared helper can check it.
func BuildStatic(batchTokens [][]Token, eosToken Token, maxPredicts int, alpha float64, progress ProgressFunc) (*Automaton, error) {
	a := NewStatic(maxPredicts, alpha)
	if err := a.AddBatchTokens(batchTokens, eosToken, progress); err != nil {
		return nil, err
	}
	a.Freeze()
	return a, nil
}

// TransferCurState advances the automaton's own cursor by one token via
// TransferState.
func (a *Automaton) TransferCurState(t Token) {
	a.cur.Index, a.cur.Length = TransferState(a.states, a.cur.Index, a.cur.Length, t)
}

// TransferTokens advances the cursor by each token in tokens, in order.
func (a *Automaton) TransferTokens(tokens []Token) {
	for _, t := range tokens {
		a.TransferCurState(t)
	}
}

// Lookup returns what following t from the current cursor position would
// yield, without mutating the cursor.
func (a *Automaton) Lookup(t Token) (StateIndex, int32) {
	return TransferState(a.states, a.cur.Index, a.cur.Length, t)
}

// LookupFrom is the cursor-threading variant of Lookup: it takes an
// explicit Cursor instead of reading the automaton's own, so independent
// callers can each hold their own cursor value and query the same frozen
// automaton concurrently.
func (a *Automaton) LookupFrom(cur Cursor, t Token) (StateIndex, int32) {
	return TransferState(a.states, cur.Index, cur.Length, t)
}

// Cursor returns the automaton's current cursor.
func (a *Automaton) Cursor() Cursor { return a.cur }

// MaxLength returns the number of tokens indexed so far.
func (a *Automaton) MaxLength() int32 { return a.maxLength }

// NumStates returns the number of states in the arena, including state 0.
func (a *Automaton) NumStates() int { return len(a.states) }

// State returns a copy of the state at index i. Exposed for tests and for
// callers that want to inspect endpos bookkeeping directly.
func (a *Automaton) State(i StateIndex) State { return a.states[i] }

// Last returns the index of the state representing the whole prefix
// indexed so far.
func (a *Automaton) Last() StateIndex { return a.last }

// ToAncestor steps off the whole-prefix state: if index is non-initial and
// names the same state as Last, it moves once to that state's suffix link
// and reports the link's length. Otherwise index/length are returned
// unchanged. Tree drafters use this to avoid speculating from a position
// with no continuation in the indexed stream. See DESIGN.md for the
// bounded-walk variant that was considered and rejected.
func (a *Automaton) ToAncestor(index StateIndex, length int32) (StateIndex, int32) {
	if index != InitialState && index == a.last {
		index = a.states[index].Link
		length = a.states[index].Length
	}
	return index, length
}
