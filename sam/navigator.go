package sam

// TransferState yields the (index, length) reached by consuming token t
// from a given (index, length) position in states, falling back through
// suffix links on mismatch.
//
// It is a pure function over the state arena, not a method, so it can be
// tested directly against a brute-force longest-suffix-match reference
// without constructing a whole Automaton.
//
// Algorithm:
//  1. While index != 0 and index has no transition on t: fall back to
//     index's suffix link, resetting length to the new state's own
//     Length (the longest-suffix-match invariant — length always tracks
//     the full length of whatever state index currently names).
//  2. If index now has a transition on t: follow it, length++.
//  3. Otherwise (state 0 itself has no transition on t): the empty suffix
//     matches; return (0, 0).
func TransferState(states []State, index StateIndex, length int32, t Token) (StateIndex, int32) {
	for index != InitialState {
		if _, ok := states[index].Transitions[t]; ok {
			break
		}
		index = states[index].Link
		length = states[index].Length
	}
	if next, ok := states[index].Transitions[t]; ok {
		return next, length + 1
	}
	return InitialState, 0
}
