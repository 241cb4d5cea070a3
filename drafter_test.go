package samd

import (
	"errors"
	"testing"

	"github.com/ruckbreasoning/samd/prefilter"
	"github.com/ruckbreasoning/samd/sam"
)

// fakeTreeModel is a minimal TreeModel recording its calls, used so tests
// can assert the Drafter delegates to it exactly when expected.
type fakeTreeModel struct {
	resetCalls  int
	lookupCalls []Token
	updateCalls []UpdateInput
	lookupValue any
}

func (f *fakeTreeModel) Reset() { f.resetCalls++ }
func (f *fakeTreeModel) Lookup(startToken Token) any {
	f.lookupCalls = append(f.lookupCalls, startToken)
	return f.lookupValue
}
func (f *fakeTreeModel) Update(in UpdateInput) { f.updateCalls = append(f.updateCalls, in) }

func TestNewDrafterRejectsNilDependencies(t *testing.T) {
	cfg := DefaultConfig()
	static, err := sam.BuildStatic([][]Token{{1, 2, 3}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}

	if _, err := NewDrafter(cfg, nil, &fakeTreeModel{}); !errors.Is(err, ErrNilStatic) {
		t.Errorf("NewDrafter(nil static) err = %v, want ErrNilStatic", err)
	}
	if _, err := NewDrafter(cfg, static, nil); !errors.Is(err, ErrNilTreeModel) {
		t.Errorf("NewDrafter(nil treeModel) err = %v, want ErrNilTreeModel", err)
	}
}

// TestDrafterFusionPicksDynamicOnTie checks the tie-break: when the dynamic
// SAM's match length equals the static SAM's effective (bias-adjusted) match
// length, the Drafter must pick the dynamic SAM. Both automata's cursors are
// positioned directly (bypassing Update's own incremental bookkeeping) so
// the resulting match lengths are exact and known ahead of time: dynamic
// reaches "1,2,3,99" (length 4), static reaches "7,8,9,99" (length 4), and
// with LenBias=0 the two are tied.
func TestDrafterFusionPicksDynamicOnTie(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LenBias = 0
	cfg.LenThreshold = 1
	cfg.NPredicts = 10
	cfg.Alpha = 1.0

	static, err := sam.BuildStatic([][]Token{{7, 8, 9, 99, 10}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}

	if err := d.dyn.AddTokens([]Token{1, 2, 3, 99, 5}); err != nil {
		t.Fatalf("dyn.AddTokens: %v", err)
	}
	d.dyn.TransferTokens([]Token{1, 2, 3})
	d.static.TransferTokens([]Token{7, 8, 9})

	cand := d.Lookup(99)
	if cand.Kind != CandidateSequence {
		t.Fatalf("Lookup kind = %v, want CandidateSequence", cand.Kind)
	}
	if len(tm.lookupCalls) != 0 {
		t.Errorf("tree model Lookup called %d times, want 0", len(tm.lookupCalls))
	}
	// The dynamic corpus continues "...,3,99" with 5; the static corpus
	// would have continued with 10. Seeing 5 proves the dynamic SAM won
	// the tie, not the static one.
	if len(cand.Sequence) < 2 || cand.Sequence[0] != 99 || cand.Sequence[1] != 5 {
		t.Errorf("Sequence = %v, want to start with [99 5] (dynamic source)", cand.Sequence)
	}
}

// TestDrafterFusionPicksStaticWhenStrictlyLonger mirrors the tie test but
// with a static match that is strictly longer than the dynamic one after
// bias, confirming the static SAM wins in that case.
func TestDrafterFusionPicksStaticWhenStrictlyLonger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LenBias = 0
	cfg.LenThreshold = 1
	cfg.NPredicts = 10
	cfg.Alpha = 1.0

	static, err := sam.BuildStatic([][]Token{{6, 7, 8, 9, 99, 10}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}

	if err := d.dyn.AddTokens([]Token{1, 2, 3, 99, 5}); err != nil {
		t.Fatalf("dyn.AddTokens: %v", err)
	}
	d.dyn.TransferTokens([]Token{1, 2, 3})       // dynamic match length 4
	d.static.TransferTokens([]Token{6, 7, 8, 9}) // static match length 5

	cand := d.Lookup(99)
	if cand.Kind != CandidateSequence {
		t.Fatalf("Lookup kind = %v, want CandidateSequence", cand.Kind)
	}
	if len(cand.Sequence) < 2 || cand.Sequence[0] != 99 || cand.Sequence[1] != 10 {
		t.Errorf("Sequence = %v, want to start with [99 10] (static source)", cand.Sequence)
	}
}

// TestDrafterFusionLenBiasPenalizesStatic checks the bias arithmetic: with
// LenBias=3 and LenThreshold=3, a dynamic match of 3 must beat a static raw
// match of 5 (effective 2 after bias) and still clear the threshold, so the
// Drafter emits a sequence draft sourced from the dynamic SAM.
func TestDrafterFusionLenBiasPenalizesStatic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LenBias = 3
	cfg.LenThreshold = 3
	cfg.NPredicts = 10
	cfg.Alpha = 1.0

	static, err := sam.BuildStatic([][]Token{{6, 7, 8, 9, 99, 10}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}

	if err := d.dyn.AddTokens([]Token{1, 2, 99, 5, 7}); err != nil {
		t.Fatalf("dyn.AddTokens: %v", err)
	}
	d.dyn.TransferTokens([]Token{1, 2})          // dynamic match 3 on lookup(99)
	d.static.TransferTokens([]Token{6, 7, 8, 9}) // static raw match 5, effective 2

	cand := d.Lookup(99)
	if cand.Kind != CandidateSequence {
		t.Fatalf("Lookup kind = %v, want CandidateSequence", cand.Kind)
	}
	if len(tm.lookupCalls) != 0 {
		t.Errorf("tree model Lookup called %d times, want 0", len(tm.lookupCalls))
	}
	// The dynamic corpus continues "...,2,99" with 5; the static one would
	// have continued with 10.
	if len(cand.Sequence) < 2 || cand.Sequence[0] != 99 || cand.Sequence[1] != 5 {
		t.Errorf("Sequence = %v, want to start with [99 5] (dynamic source)", cand.Sequence)
	}
}

func TestDrafterFallsBackToTreeModelOnWeakMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LenThreshold = 5

	static, err := sam.BuildStatic([][]Token{{1, 2, 3}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{lookupValue: "tree-payload"}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}

	cand := d.Lookup(99) // token never seen anywhere: both matches are 0
	if cand.Kind != CandidateTree {
		t.Fatalf("Lookup kind = %v, want CandidateTree", cand.Kind)
	}
	if cand.Tree != "tree-payload" {
		t.Errorf("Tree = %v, want tree-payload", cand.Tree)
	}
	if len(tm.lookupCalls) != 1 || tm.lookupCalls[0] != 99 {
		t.Errorf("tree model Lookup calls = %v, want [99]", tm.lookupCalls)
	}
}

func TestDrafterResetClearsDynamicAndTreeModel(t *testing.T) {
	cfg := DefaultConfig()
	static, err := sam.BuildStatic([][]Token{{1, 2, 3}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}

	d.Update(UpdateInput{Tokens: []Token{1, 2}})
	d.Reset()

	if tm.resetCalls != 1 {
		t.Errorf("tree model Reset called %d times, want 1", tm.resetCalls)
	}
	if d.dyn.NumStates() != 1 {
		t.Errorf("dynamic automaton not cleared by Reset: NumStates = %d", d.dyn.NumStates())
	}
}

func TestDrafterUpdateForwardsToTreeModel(t *testing.T) {
	cfg := DefaultConfig()
	static, err := sam.BuildStatic([][]Token{{1, 2, 3}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}

	in := UpdateInput{Tokens: []Token{7, 8}}
	d.Update(in)
	if len(tm.updateCalls) != 1 {
		t.Fatalf("tree model Update called %d times, want 1", len(tm.updateCalls))
	}
	if tm.updateCalls[0].Tokens[0] != 7 {
		t.Errorf("forwarded UpdateInput.Tokens = %v, want starting with 7", tm.updateCalls[0].Tokens)
	}
}

// TestDrafterPrefilterGatesStaticLookup confirms that a CorpusHint miss
// suppresses the static SAM lookup entirely, even when the static automaton
// itself would otherwise report a strong match: the static cursor is
// positioned directly at a real match ("5,6,7"), but the attached
// CorpusHint is built over an unrelated corpus and so reports no hit for
// the trailing window, forcing the Drafter past the static SAM.
func TestDrafterPrefilterGatesStaticLookup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrefilterWindow = 2
	cfg.LenThreshold = 1
	cfg.LenBias = 0

	static, err := sam.BuildStatic([][]Token{{5, 6, 7, 8}}, NoToken, cfg.NPredicts, cfg.Alpha, nil)
	if err != nil {
		t.Fatalf("BuildStatic: %v", err)
	}
	tm := &fakeTreeModel{}
	d, err := NewDrafter(cfg, static, tm)
	if err != nil {
		t.Fatalf("NewDrafter: %v", err)
	}
	d.static.TransferTokens([]Token{5, 6, 7}) // would match length 4 on 8, ungated

	hint, err := prefilter.NewCorpusHint([][]sam.Token{{100, 200}}, cfg.PrefilterWindow)
	if err != nil {
		t.Fatalf("NewCorpusHint: %v", err)
	}
	d.WithCorpusHint(hint)
	d.recent = []Token{1} // pads the trailing window to exactly PrefilterWindow tokens

	cand := d.Lookup(8)
	if cand.Kind != CandidateTree {
		t.Errorf("Lookup kind = %v, want CandidateTree when the prefilter gate misses", cand.Kind)
	}
}
