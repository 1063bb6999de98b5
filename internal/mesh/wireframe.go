package mesh

// WireframeIndices returns the distinct undirected edges of the triangle
// list as line pairs, in first-seen order. Within a triangle (i0, i1, i2)
// the edges are visited as (i0,i1), (i1,i2), (i0,i2).
func WireframeIndices(indices []uint32) []uint32 {
	seen := make(map[EdgeKey]struct{}, len(indices))
	lines := make([]uint32, 0, len(indices))

	add := func(a, b uint32) {
		key := NewEdgeKey(a, b)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		lines = append(lines, a, b)
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		add(i0, i1)
		add(i1, i2)
		add(i0, i2)
	}

	return lines
}

// Wireframe returns the line-pair index list for m, computing it on first
// use. A new mesh starts with an empty cache.
func (m *Mesh) Wireframe() []uint32 {
	m.wireOnce.Do(func() {
		m.wireframe = WireframeIndices(m.Indices)
	})
	return m.wireframe
}
