package samd

// Config controls Drafter fusion behavior and performance characteristics.
// Loading Config from a file or environment is the caller's concern; this
// package only defines the in-memory struct.
type Config struct {
	// NPredicts is the maximum draft length in tokens: the hard cap the
	// Drafter's dynamic SAM uses to bound its confidence-proportional
	// budget. The static SAM keeps the cap it was built with (the
	// maxPredicts argument of sam.BuildStatic). Default: 40.
	NPredicts int

	// Alpha is the confidence multiplier mapping a matched suffix length
	// to a draft budget: budget = min(NPredicts, 1 + floor(matchLength *
	// Alpha)). Default: 4.0.
	Alpha float64

	// LenBias is subtracted from the static SAM's match length before
	// comparing it against the dynamic SAM's, penalizing the static prior
	// relative to local self-similarity. Default: 1.
	LenBias int32

	// LenThreshold is the minimum effective match length required to emit
	// a linear (sequence) draft; below it, the Drafter falls back to the
	// external tree model. Default: 1.
	LenThreshold int32

	// EOSToken is appended after any static-corpus sequence that doesn't
	// already end with it, so draft reads never silently cross a document
	// boundary.
	EOSToken Token

	// PrefilterWindow is the number of most-recent tokens a CorpusHint
	// prefilter (see package prefilter) is consulted against before a
	// static-SAM lookup is attempted. Zero disables the prefilter gate
	// even if one is configured on the Drafter. Default: 0 (disabled;
	// most callers have no static corpus large enough to need the gate).
	PrefilterWindow int
}

// DefaultConfig returns the default configuration. Callers typically copy
// this and override only the fields they care about.
func DefaultConfig() Config {
	return Config{
		NPredicts:       40,
		Alpha:           4.0,
		LenBias:         1,
		LenThreshold:    1,
		EOSToken:        NoToken,
		PrefilterWindow: 0,
	}
}
