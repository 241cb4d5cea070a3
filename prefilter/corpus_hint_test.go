package prefilter

import (
	"testing"

	"github.com/ruckbreasoning/samd/sam"
)

func TestCorpusHintHitAndMiss(t *testing.T) {
	corpus := [][]sam.Token{{1, 2, 3, 4}, {9, 8, 7}}
	hint, err := NewCorpusHint(corpus, 2)
	if err != nil {
		t.Fatalf("NewCorpusHint: %v", err)
	}

	tests := []struct {
		name   string
		recent []sam.Token
		want   bool
	}{
		{"seen window at start", []sam.Token{1, 2}, true},
		{"seen window mid-sequence", []sam.Token{3, 4}, true},
		{"seen window in second sequence", []sam.Token{9, 8}, true},
		{"unseen window", []sam.Token{4, 9}, false},
		{"unseen pair entirely", []sam.Token{100, 200}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hint.Hit(tt.recent); got != tt.want {
				t.Errorf("Hit(%v) = %v, want %v", tt.recent, got, tt.want)
			}
		})
	}
}

func TestCorpusHintFailsOpenOnShortWindow(t *testing.T) {
	hint, err := NewCorpusHint([][]sam.Token{{1, 2, 3}}, 3)
	if err != nil {
		t.Fatalf("NewCorpusHint: %v", err)
	}
	if !hint.Hit([]sam.Token{1}) {
		t.Errorf("Hit with window shorter than n should fail open (return true)")
	}
}

func TestCorpusHintNilFailsOpen(t *testing.T) {
	var hint *CorpusHint
	if !hint.Hit([]sam.Token{1, 2, 3}) {
		t.Errorf("Hit on nil CorpusHint should fail open (return true)")
	}
}

func TestCorpusHintUsesTrailingWindow(t *testing.T) {
	hint, err := NewCorpusHint([][]sam.Token{{5, 6}}, 2)
	if err != nil {
		t.Fatalf("NewCorpusHint: %v", err)
	}
	// Only the trailing 2 tokens of recent matter; the leading 1 is noise.
	if !hint.Hit([]sam.Token{999, 5, 6}) {
		t.Errorf("Hit should check only the trailing window, got false")
	}
	if hint.Hit([]sam.Token{5, 6, 999}) {
		t.Errorf("Hit should not match when the trailing window itself is unseen")
	}
}
