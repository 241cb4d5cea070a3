package prefilter

import (
	"encoding/binary"

	"github.com/coregx/ahocorasick"

	"github.com/ruckbreasoning/samd/sam"
)

// CorpusHint indexes every n-token window of a static corpus as an
// Aho-Corasick pattern so that Hit can cheaply reject trailing windows that
// never occurred anywhere in the corpus, without touching the (much more
// expensive) suffix automaton itself.
type CorpusHint struct {
	auto *ahocorasick.Automaton
	n    int
}

// NewCorpusHint builds a CorpusHint over every width-n window across every
// sequence in batchTokens. Duplicate windows are only added once — the
// automaton only needs to answer "has this window ever occurred", not how
// often.
func NewCorpusHint(batchTokens [][]sam.Token, n int) (*CorpusHint, error) {
	builder := ahocorasick.NewBuilder()
	seen := make(map[string]struct{})
	for _, tokens := range batchTokens {
		for i := 0; i+n <= len(tokens); i++ {
			key := encodeWindow(tokens[i : i+n])
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			builder.AddPattern([]byte(key))
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &CorpusHint{auto: auto, n: n}, nil
}

// Hit reports whether the trailing n tokens of recent (most recent token
// last) occurred verbatim somewhere in the indexed corpus. A recent slice
// shorter than the window width fails open (returns true) — there isn't
// enough context yet to gate on, so the caller should fall through to the
// full static lookup rather than being denied by the prefilter.
func (c *CorpusHint) Hit(recent []sam.Token) bool {
	if c == nil || len(recent) < c.n {
		return true
	}
	window := recent[len(recent)-c.n:]
	m := c.auto.Find([]byte(encodeWindow(window)), 0)
	return m != nil
}

// encodeWindow serializes a token window into a fixed-width big-endian byte
// string so Aho-Corasick can treat each window as an opaque literal pattern.
func encodeWindow(tokens []sam.Token) string {
	buf := make([]byte, len(tokens)*4)
	for i, t := range tokens {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(t))
	}
	return string(buf)
}
