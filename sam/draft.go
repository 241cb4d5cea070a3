package sam

import (
	"container/heap"
	"sort"

	"github.com/ruckbreasoning/samd/internal/conv"
)

// genBudget bounds draft length by both a hard cap (maxPredicts) and a
// confidence-proportional budget: a longer observed match licenses a
// longer speculation.
func (a *Automaton) genBudget(matchLength int32) int {
	budget := 1 + int(float64(matchLength)*a.alpha)
	if budget > a.maxPredicts {
		budget = a.maxPredicts
	}
	if budget < 0 {
		budget = 0
	}
	return budget
}

// GenDraft produces a linear continuation starting at startToken by reading
// the stream at the matched state's earliest occurrence. Reads past the
// end of the indexed stream are silently padded with padToken (0) so the
// decoder always sees a fixed-shape buffer — a defined outcome, not an
// error.
func (a *Automaton) GenDraft(index StateIndex, matchLength int32, startToken Token) ([]Token, SequenceBuffer) {
	n := a.genBudget(matchLength)
	if n == 0 {
		return nil, buildSequenceBuffer(0)
	}

	seq := make([]Token, 0, n)
	seq = append(seq, startToken)
	endpos := conv.Int32ToInt(a.states[index].MinEndpos)
	for i := 1; i < n; i++ {
		pos := endpos + i
		if pos < len(a.inputIDs) {
			seq = append(seq, a.inputIDs[pos])
		} else {
			seq = append(seq, padToken)
		}
	}
	return seq, buildSequenceBuffer(len(seq))
}

// searchItem is one entry of the best-first frontier search's priority
// queue. prob is the cumulative transition-probability product, stored
// negated: a smaller (more negative) prob is a *higher*-probability,
// higher-priority branch. seq breaks ties deterministically by insertion
// order.
type searchItem struct {
	prob   float64
	token  Token
	index  StateIndex
	parent int32
	seq    int
}

// searchQueue is a container/heap priority queue ordered by searchItem.prob
// ascending, ties broken by insertion order.
type searchQueue []searchItem

func (q searchQueue) Len() int { return len(q) }
func (q searchQueue) Less(i, j int) bool {
	if q[i].prob != q[j].prob {
		return q[i].prob < q[j].prob
	}
	return q[i].seq < q[j].seq
}
func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *searchQueue) Push(x any)   { *q = append(*q, x.(searchItem)) }
func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// GenTreeDraft builds a best-first frontier tree when the match is too weak
// to justify a linear draft. It returns the tree's tokens in topological
// (BFS-like) order, the parallel parent-index array, and the buffers a
// tree-attention decoding step needs.
//
// A popped state with no outgoing transitions, or with a zero endpos count
// (only ever true of the initial state, which the construction's ancestor
// walk never increments), simply contributes no children: the frontier
// shrinks and the loop terminates early if it empties before n is reached.
// The zero-count guard keeps the branch-weight division defined when the
// search starts at the initial (no-match) state.
//
// The probability product is kept as a raw float64; for very long matches
// it can underflow toward zero, flattening the ranking of deep branches.
func (a *Automaton) GenTreeDraft(index StateIndex, matchLength int32, startToken Token) ([]Token, []int32, TreeBuffer) {
	n := a.genBudget(matchLength)
	if n == 0 {
		buf := BuildTreeBuffer(nil)
		return nil, nil, buf
	}

	q := &searchQueue{}
	heap.Init(q)
	nextSeq := 0
	heap.Push(q, searchItem{prob: -1.0, token: startToken, index: index, parent: -1, seq: nextSeq})
	nextSeq++

	tree := make([]Token, 0, n)
	ancTree := make([]int32, 0, n)

	for len(tree) != n && q.Len() != 0 {
		item := heap.Pop(q).(searchItem)
		curTreeIndex := conv.IntToInt32(len(tree))
		tree = append(tree, item.token)
		ancTree = append(ancTree, item.parent)
		if len(tree) == n {
			break
		}

		state := a.states[item.index]
		cntSum := state.CntEndpos
		if cntSum == 0 || len(state.Transitions) == 0 {
			continue
		}
		// Go map iteration order is randomized per process; pushing children
		// in token-sorted order instead keeps the insertion-order tie-break
		// (searchItem.seq) — and therefore the tree produced for a given
		// automaton and query — reproducible across runs even when two
		// children have equal probability.
		childTokens := make([]Token, 0, len(state.Transitions))
		for childToken := range state.Transitions {
			childTokens = append(childTokens, childToken)
		}
		sort.Slice(childTokens, func(i, j int) bool { return childTokens[i] < childTokens[j] })

		for _, childToken := range childTokens {
			childIndex := state.Transitions[childToken]
			weight := float64(a.states[childIndex].CntEndpos) / float64(cntSum)
			heap.Push(q, searchItem{
				prob:   item.prob * weight,
				token:  childToken,
				index:  childIndex,
				parent: curTreeIndex,
				seq:    nextSeq,
			})
			nextSeq++
		}
	}

	return tree, ancTree, BuildTreeBuffer(ancTree)
}
