package egg

// Polygon is a simple closed polygon given as an ordered vertex ring
// (the closing edge from the last vertex back to the first is implicit).
// Polygons are immutable after construction and safe for concurrent reads.
type Polygon struct {
	vertices []Point
}

// NewPolygon copies vertices into an immutable Polygon.
func NewPolygon(vertices []Point) Polygon {
	v := make([]Point, len(vertices))
	copy(v, vertices)
	return Polygon{vertices: v}
}

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p.vertices) }

// Vertex returns the i-th vertex.
func (p Polygon) Vertex(i int) Point { return p.vertices[i] }

// Contains reports whether pt lies inside the polygon using the even-odd
// ray-casting rule. Points exactly on an edge or vertex count as inside:
// inputs are measured and rounded values, so a boundary-exclusive test
// would turn rounding noise into false negatives.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.vertices)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.vertices[j], p.vertices[i]

		if onSegment(pt, a, b) {
			return true
		}

		if (b.Y > pt.Y) != (a.Y > pt.Y) {
			xCross := (a.X-b.X)*(pt.Y-b.Y)/(a.Y-b.Y) + b.X
			if pt.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// onSegment reports whether pt lies on the closed segment [a, b].
// Exact comparison is intentional: vertices and inputs are already rounded.
func onSegment(pt, a, b Point) bool {
	cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
	if cross != 0 {
		return false
	}
	return min(a.X, b.X) <= pt.X && pt.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= pt.Y && pt.Y <= max(a.Y, b.Y)
}
