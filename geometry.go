package hanoi

// VerticesPerRect is the number of vertices Rect and CenteredRect emit:
// two triangles, no index buffer.
const VerticesPerRect = 6

// Vertex is a homogeneous clip-space position.
// Z is 0 and W is 1 for everything built in this package.
type Vertex struct {
	Pos [4]float32
}

// V is a convenience function to create a Vertex in the z=0 plane.
func V(x, y float32) Vertex {
	return Vertex{Pos: [4]float32{x, y, 0, 1}}
}

// X returns the horizontal clip-space coordinate.
func (v Vertex) X() float32 { return v.Pos[0] }

// Y returns the vertical clip-space coordinate.
func (v Vertex) Y() float32 { return v.Pos[1] }

// Rect returns the two triangles covering the axis-aligned rectangle whose
// top-left corner is (x, y), extending w to the right and h downward.
//
// The vertex order is (x,y), (x+w,y), (x+w,y-h), (x+w,y-h), (x,y-h), (x,y).
// Negative or zero extents are not rejected; they yield degenerate or
// mirrored triangles.
func Rect(x, y, w, h float32) []Vertex {
	return AppendRect(make([]Vertex, 0, VerticesPerRect), x, y, w, h)
}

// CenteredRect returns the two triangles covering the rectangle of size w×h
// centered at (x, y).
func CenteredRect(x, y, w, h float32) []Vertex {
	return Rect(x-w/2, y+h/2, w, h)
}

// AppendRect appends the vertices of Rect(x, y, w, h) to dst and returns the
// extended slice. Use it to batch many rectangles into a single draw.
func AppendRect(dst []Vertex, x, y, w, h float32) []Vertex {
	return append(dst,
		V(x, y),
		V(x+w, y),
		V(x+w, y-h),
		V(x+w, y-h),
		V(x, y-h),
		V(x, y),
	)
}
