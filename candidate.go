package samd

import "github.com/ruckbreasoning/samd/sam"

// CandidateKind distinguishes the two shapes a drafted continuation can
// take.
type CandidateKind int

const (
	// CandidateSequence marks a linear draft: a flat token sequence
	// starting with the queried token.
	CandidateSequence CandidateKind = iota

	// CandidateTree marks a tree-shaped draft produced by the external
	// tree model (out of scope for this package; see TreeModel).
	CandidateTree
)

// String returns a human-readable candidate kind name.
func (k CandidateKind) String() string {
	switch k {
	case CandidateSequence:
		return "Sequence"
	case CandidateTree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// Candidate is the result of Drafter.Lookup.
type Candidate struct {
	Kind CandidateKind

	// Sequence holds the linear draft, starting with the queried token,
	// when Kind == CandidateSequence. Nil otherwise.
	Sequence []Token

	// SequenceBuffer holds the linear draft's position ids when
	// Kind == CandidateSequence.
	SequenceBuffer sam.SequenceBuffer

	// Tree holds whatever the external TreeModel.Lookup returned, when
	// Kind == CandidateTree. Nil otherwise.
	Tree any
}
