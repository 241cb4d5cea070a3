package sam

// BoolTensor is a boolean buffer with an explicit shape. This package owns
// no tensor runtime; the external decoder is responsible for lifting this
// into whatever tensor type it actually uses.
type BoolTensor struct {
	Shape []int
	Data  []bool
}

// IntTensor is the integer-valued analogue of BoolTensor, used for position
// ids and retrieval indices.
type IntTensor struct {
	Shape []int
	Data  []int32
}

// TreeBuffer holds the three auxiliary buffers a tree-aware decoding step
// needs to attend across a speculative draft tree in a single batched
// forward pass.
type TreeBuffer struct {
	// AttnMask has shape [1,1,n,n]; AttnMask.Data[i*n+j] is true iff j lies
	// on the ancestor chain of i (inclusive of i itself).
	AttnMask BoolTensor

	// PositionIDs has shape [1,n] and encodes each node's depth from the
	// tree root (the root is depth 0).
	PositionIDs IntTensor

	// RetrieveIndices has shape [numLeaves,maxDepth]: each row is one
	// leaf's root-first ancestor path, right-padded with -1 to the
	// maximum depth among all leaves.
	RetrieveIndices IntTensor
}

// SequenceBuffer holds the auxiliary buffer for a linear (non-tree) draft:
// plain increasing position ids.
type SequenceBuffer struct {
	// PositionIDs has shape [1,n] and equals [0,1,...,n-1].
	PositionIDs IntTensor
}

// BuildTreeBuffer converts a parent-pointer array (ancTree[i] is the tree
// index of node i's parent, -1 for the root) into the three tensors a
// tree-attention decoding step needs.
//
// The node ordering in ancTree must be topological: every parent's index
// must be less than any of its children's (guaranteed by the draft
// generator, which only ever appends a child after its parent has already
// been appended to the tree).
func BuildTreeBuffer(ancTree []int32) TreeBuffer {
	n := len(ancTree)

	isLeaf := make([]bool, n)
	for i := range isLeaf {
		isLeaf[i] = true
	}
	positionIDs := make([]int32, n)
	for i := 1; i < n; i++ {
		isLeaf[ancTree[i]] = false
		positionIDs[i] = positionIDs[ancTree[i]] + 1
	}

	mask := make([]bool, n*n)
	for i := 0; i < n; i++ {
		for j := i; j != -1; j = int(ancTree[j]) {
			mask[i*n+j] = true
		}
	}

	var retrieve [][]int32
	maxDepth := 0
	for i := 0; i < n; i++ {
		if !isLeaf[i] {
			continue
		}
		path := []int32{int32(i)}
		for path[len(path)-1] != 0 {
			path = append(path, ancTree[path[len(path)-1]])
		}
		reverse(path)
		if len(path) > maxDepth {
			maxDepth = len(path)
		}
		retrieve = append(retrieve, path)
	}

	retrieveData := make([]int32, 0, len(retrieve)*maxDepth)
	for _, path := range retrieve {
		retrieveData = append(retrieveData, path...)
		for len(path) < maxDepth {
			retrieveData = append(retrieveData, -1)
			path = append(path, -1)
		}
	}

	return TreeBuffer{
		AttnMask:    BoolTensor{Shape: []int{1, 1, n, n}, Data: mask},
		PositionIDs: IntTensor{Shape: []int{1, n}, Data: positionIDs},
		RetrieveIndices: IntTensor{
			Shape: []int{len(retrieve), maxDepth},
			Data:  retrieveData,
		},
	}
}

func reverse(s []int32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// buildSequenceBuffer returns the plain [0,1,...,n-1] position ids used for
// a linear draft of length n.
func buildSequenceBuffer(n int) SequenceBuffer {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	return SequenceBuffer{PositionIDs: IntTensor{Shape: []int{1, n}, Data: ids}}
}
