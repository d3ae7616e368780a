package hanoi

// Scene layout in clip space. Rods are thin vertical markers whose left
// edges sit at RodX; disks are centered on the rods and stacked upward from
// diskBaseY.
const (
	rodTop    = 0.1
	rodWidth  = 0.02
	rodHeight = 1.0

	diskBaseY  = -0.88
	diskPitch  = 0.03
	diskHeight = 0.02
)

// RodX holds the left edge of each rod marker.
var RodX = [RodCount]float32{-0.7, 0, 0.7}

// DrawScene draws the three rod markers, then every disk bottom-up per rod,
// one SubmitTriangles call per rectangle.
func DrawScene(c Canvas, p *Puzzle) {
	for _, x := range RodX {
		c.SubmitTriangles(Rect(x, rodTop, rodWidth, rodHeight), RodColor)
	}
	p.EachDisk(func(rod, level int, size float32) {
		c.SubmitTriangles(DiskRect(rod, level, size), DiskColor)
	})
}

// DiskRect returns the rectangle of a disk of the given size at level
// (1 is the bottom) on rod.
func DiskRect(rod, level int, size float32) []Vertex {
	x := RodX[rod] + rodWidth/2
	y := diskBaseY + float32(level)*diskPitch
	return CenteredRect(x, y, size, diskHeight)
}
