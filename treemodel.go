package samd

// UpdateInput carries the tokens accepted by the downstream language model
// plus the optional extras the external tree-model drafter may want. Only
// Tokens is meaningful to the Drafter itself; the rest are forwarded
// untouched to TreeModel.Update.
type UpdateInput struct {
	// Tokens are the newly accepted tokens, in generation order.
	Tokens []Token

	// LastHiddenStates are the language model's hidden states for the
	// newly accepted tokens, if the caller has them. One row per token;
	// row width is the model's hidden dimension. Nil if unused.
	LastHiddenStates [][]float32

	// TreeTokens are the tree-draft tokens the language model actually
	// verified, if the last candidate was tree-shaped. Nil if unused.
	TreeTokens []Token

	// TreeLogits are the language model's per-node logits over
	// TreeTokens, if available. Nil if unused.
	TreeLogits [][]float32
}

// TreeModel is the external drafter that supplies tree-shaped candidates
// when the Drafter's own SAM-backed match is too weak for a linear draft.
// Drafter only ever calls through this interface; it never constructs a
// TreeModel itself.
type TreeModel interface {
	// Reset clears any per-generation state the tree model holds.
	Reset()

	// Lookup returns a tree-shaped candidate for startToken. The return
	// type is opaque to Drafter, which hands it to the caller unchanged.
	Lookup(startToken Token) any

	// Update advances the tree model's internal state with newly
	// accepted tokens and whatever auxiliary data the caller supplied.
	Update(in UpdateInput)
}
