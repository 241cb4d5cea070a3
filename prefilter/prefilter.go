// Package prefilter provides a fast gate in front of an expensive static
// suffix-automaton lookup.
//
// It indexes the token n-grams of a static corpus in an Aho-Corasick
// automaton (github.com/coregx/ahocorasick), each window encoded as a
// fixed-width byte string. A Drafter can consult a CorpusHint before
// paying for sam.Automaton.Lookup against a potentially very large static
// automaton: a window that never occurs in the corpus cannot produce a
// static match spanning the whole window, so a miss skips the lookup
// entirely. Shorter static matches (fewer tokens than the window) are
// skipped along with it.
package prefilter
