package samd

import (
	"github.com/ruckbreasoning/samd/prefilter"
	"github.com/ruckbreasoning/samd/sam"
)

// Drafter holds one dynamic and one static suffix automaton and fuses them
// with a length-bias policy to answer speculative-continuation queries.
type Drafter struct {
	cfg Config

	dyn       *sam.Automaton
	static    *sam.Automaton
	treeModel TreeModel

	hint *prefilter.CorpusHint // optional; nil disables the gate

	// recent tracks the trailing tokens fed via Update, capped at
	// cfg.PrefilterWindow, so Lookup can build the window CorpusHint.Hit
	// needs without requiring the caller to resupply history.
	recent []Token
}

// NewDrafter constructs a Drafter over a pre-built static automaton and an
// external tree model. The dynamic automaton starts empty; callers begin a
// new generation by constructing a new Drafter or by calling Reset.
func NewDrafter(cfg Config, static *sam.Automaton, treeModel TreeModel) (*Drafter, error) {
	if static == nil {
		return nil, ErrNilStatic
	}
	if treeModel == nil {
		return nil, ErrNilTreeModel
	}
	return &Drafter{
		cfg:       cfg,
		dyn:       sam.NewDynamic(cfg.NPredicts, cfg.Alpha),
		static:    static,
		treeModel: treeModel,
	}, nil
}

// WithCorpusHint attaches a prefilter.CorpusHint built over the same corpus
// the static automaton was built from. Once attached, and while
// cfg.PrefilterWindow is positive, Lookup consults it before the static SAM
// lookup and treats a miss as "no match" on the static side — see the
// package prefilter doc comment for what a miss does and does not rule out.
func (d *Drafter) WithCorpusHint(hint *prefilter.CorpusHint) *Drafter {
	d.hint = hint
	return d
}

// Reset clears the dynamic SAM's arena, rewinds both cursors, and resets
// the external tree model.
func (d *Drafter) Reset() {
	d.dyn.Reset()
	d.static.Reset()
	d.treeModel.Reset()
	d.recent = nil
}

// Lookup fuses the dynamic and static automata's matches for startToken and
// returns either a linear sequence draft or delegates to the external tree
// model.
func (d *Drafter) Lookup(startToken Token) Candidate {
	predDyn, matchDyn := d.dyn.Lookup(startToken)

	matchStatic := int32(0)
	predStatic := sam.InitialState
	if d.staticHit(startToken) {
		predStatic, matchStatic = d.static.Lookup(startToken)
		matchStatic -= d.cfg.LenBias
	}

	// Dynamic wins ties; only switch to static when it is strictly longer.
	pred, matchLen, source := predDyn, matchDyn, d.dyn
	if matchStatic > matchDyn {
		pred, matchLen, source = predStatic, matchStatic, d.static
	}

	if matchLen >= d.cfg.LenThreshold {
		seq, buf := source.GenDraft(pred, matchLen, startToken)
		return Candidate{Kind: CandidateSequence, Sequence: seq, SequenceBuffer: buf}
	}
	return Candidate{Kind: CandidateTree, Tree: d.treeModel.Lookup(startToken)}
}

// staticHit reports whether the static lookup is worth attempting: true
// when no prefilter is attached, or when the attached one reports a hit for
// the trailing window ending at startToken.
func (d *Drafter) staticHit(startToken Token) bool {
	if d.hint == nil || d.cfg.PrefilterWindow <= 0 {
		return true
	}
	window := make([]Token, 0, len(d.recent)+1)
	window = append(window, d.recent...)
	window = append(window, startToken)
	return d.hint.Hit(window)
}

// Update extends the dynamic SAM with the accepted tokens, advances the
// static SAM's cursor (its arena is immutable after build), and forwards
// the update to the external tree model.
func (d *Drafter) Update(in UpdateInput) {
	// The dynamic automaton is never frozen, so this error cannot occur
	// in practice; see sam.Automaton.Freeze.
	_ = d.dyn.AddTokens(in.Tokens)
	d.static.TransferTokens(in.Tokens)
	d.treeModel.Update(in)

	d.recent = append(d.recent, in.Tokens...)
	if max := d.cfg.PrefilterWindow; max > 0 && len(d.recent) > max {
		d.recent = d.recent[len(d.recent)-max:]
	}
}
