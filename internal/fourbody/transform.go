package fourbody

// tetrahedralPermutations enumerates the 24 permutations of the six side
// labels (01,02,03,12,13,23) induced by the 24 permutations of the four
// particle labels of a tetrahedron. Each row is a permutation of indices
// into a six-tuple of side lengths ordered (01,02,03,12,13,23).
var tetrahedralPermutations = buildTetrahedralPermutations()

// edgeIndex maps an (a,b) particle-label pair (a<b) to its position in the
// canonical ordering 01,02,03,12,13,23.
func edgeIndex(a, b int) int {
	if a > b {
		a, b = b, a
	}
	switch [2]int{a, b} {
	case [2]int{0, 1}:
		return 0
	case [2]int{0, 2}:
		return 1
	case [2]int{0, 3}:
		return 2
	case [2]int{1, 2}:
		return 3
	case [2]int{1, 3}:
		return 4
	default: // {2,3}
		return 5
	}
}

// buildTetrahedralPermutations derives the 24 six-element index
// permutations by applying every permutation of particle labels (0,1,2,3)
// to the edge set and recording which source edge ends up at each
// destination position.
func buildTetrahedralPermutations() [24][6]int {
	var labelPerms [24][4]int
	n := 0
	var perm [4]int
	used := [4]bool{}
	var recurse func(depth int)
	recurse = func(depth int) {
		if depth == 4 {
			labelPerms[n] = perm
			n++
			return
		}
		for v := 0; v < 4; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			perm[depth] = v
			recurse(depth + 1)
			used[v] = false
		}
	}
	recurse(0)

	canonicalEdges := [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

	var out [24][6]int
	for p, labels := range labelPerms {
		for destPos, edge := range canonicalEdges {
			srcA := labels[edge[0]]
			srcB := labels[edge[1]]
			out[p][destPos] = edgeIndex(srcA, srcB)
		}
	}
	return out
}

// Reciprocal applies s <- f/s to every element of sides.
func Reciprocal(sides [6]float64, multiplier float64) [6]float64 {
	var out [6]float64
	for i, s := range sides {
		out[i] = multiplier / s
	}
	return out
}

// CanonicalizeMinPermutation applies every one of the 24 tetrahedral
// permutations to sides and returns the lexicographically smallest
// resulting tuple. Idempotent: applying it twice equals applying it once,
// since the identity permutation is always among the 24 candidates and the
// minimum of a set containing its own minimum is unchanged.
func CanonicalizeMinPermutation(sides [6]float64) [6]float64 {
	best := permuteBy(sides, tetrahedralPermutations[0])
	for _, perm := range tetrahedralPermutations[1:] {
		candidate := permuteBy(sides, perm)
		if lexLess(candidate, best) {
			best = candidate
		}
	}
	return best
}

func permuteBy(sides [6]float64, perm [6]int) [6]float64 {
	var out [6]float64
	for i, srcIdx := range perm {
		out[i] = sides[srcIdx]
	}
	return out
}

func lexLess(a, b [6]float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// CanonicalizeApprox is the O(1) approximate canonicalization: it locates
// only the two smallest elements' positions and permutes by whichever
// precomputed pattern moves that specific pair to the front, rather than
// testing all 24 permutations. It agrees with CanonicalizeMinPermutation
// whenever the two smallest sides alone determine the lexicographic
// minimum, which holds for the great majority of physically realizable
// tetrahedra.
func CanonicalizeApprox(sides [6]float64) [6]float64 {
	i0, i1 := twoSmallestIndices(sides)
	for _, perm := range tetrahedralPermutations {
		if perm[0] == i0 && perm[1] == i1 {
			return permuteBy(sides, perm)
		}
	}
	// Fallback: no precomputed pattern starts with this exact pair (every
	// pattern's first two edges share a vertex, so this happens whenever the
	// two smallest sides are opposite edges). Defer to the exact routine
	// rather than return an unordered tuple.
	return CanonicalizeMinPermutation(sides)
}

func twoSmallestIndices(sides [6]float64) (int, int) {
	i0, i1 := 0, 1
	if sides[i1] < sides[i0] {
		i0, i1 = i1, i0
	}
	for i := 2; i < 6; i++ {
		switch {
		case sides[i] < sides[i0]:
			i1 = i0
			i0 = i
		case sides[i] < sides[i1]:
			i1 = i
		}
	}
	return i0, i1
}
