// Package samd fuses a dynamic and a static suffix automaton into a single
// speculative-decoding drafter.
//
// samd accelerates autoregressive token generation by supplying draft
// continuations that a downstream language model can verify in a single
// batched forward pass. Drafts come from two suffix-automaton indices (see
// package sam): a dynamic one rebuilt over the ongoing generation and a
// static one pre-built once over a domain corpus. Drafter.Lookup queries
// both, fuses them with a length-bias policy, and returns either a linear
// continuation (high confidence, long match) or delegates to an external
// tree-shaped drafter (low confidence) via the TreeModel interface.
//
// The neural language model that consumes drafts, the tokenizer, and the
// external tree-model drafter are all out of scope — referenced here only
// through the TreeModel interface.
//
// Basic usage:
//
//	cfg := samd.DefaultConfig()
//	static, err := sam.BuildStatic(corpus, cfg.EOSToken, cfg.NPredicts, cfg.Alpha, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	drafter, err := samd.NewDrafter(cfg, static, myTreeModel)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	candidate := drafter.Lookup(nextToken)
//	switch candidate.Kind {
//	case samd.CandidateSequence:
//	    // verify candidate.Sequence against the language model
//	case samd.CandidateTree:
//	    // candidate.Tree is whatever myTreeModel.Lookup returned
//	}
//	drafter.Update(samd.UpdateInput{Tokens: accepted})
package samd

import "github.com/ruckbreasoning/samd/sam"

// Token identifies a single vocabulary entry; re-exported from package sam
// so callers of the Drafter rarely need to import sam directly.
type Token = sam.Token

// NoToken is the sentinel "no token" value (see sam.NoToken).
const NoToken = sam.NoToken
