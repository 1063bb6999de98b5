package operation

// Defaults returns one operation of every active kind with its default
// parameters, in menu order.
func Defaults() []Operation {
	return []Operation{
		AddTriangle{Size: 5},
		AddTriSquare{Size: 5},
		AddTriangleGrid{Size: 10, Subdivisions: 20},
		AddTriSquareGrid{Size: 10, Subdivisions: 20},
		Subdivide{Iterations: 1},
		DisplaceRandom{Amount: 0.2, Axes: AxisY},
		DisplaceSmooth{Amount: 1, Scale: 1, Octaves: 1, Axes: AxisY},
		Smooth{Amount: 0.5, Iterations: 1},
		FractalTerrain{Iterations: 6, DisplacementStart: 2, DisplacementDecay: 2},
	}
}

// Default returns the default operation of kind k, including the
// historical defaults of retired kinds.
func Default(k Kind) (Operation, bool) {
	for _, op := range Defaults() {
		if op.Kind() == k {
			return op, true
		}
	}
	switch k {
	case KindSubdivideSmooth:
		return SubdivideSmooth{Iterations: 5, Smoothness: 1}, true
	case KindMergeCleanup:
		return MergeCleanup{}, true
	}
	return nil, false
}
