package veinminer

import "fmt"

// Position is a discrete block position in a world.
type Position struct {
	X, Y, Z int
}

// At returns the position at x, y, z.
func At(x, y, z int) Position { return Position{X: x, Y: y, Z: z} }

// Offset returns the position moved by the given deltas.
func (p Position) Offset(x, y, z int) Position {
	return Position{X: p.X + x, Y: p.Y + y, Z: p.Z + z}
}

// Relative returns the neighbouring position in the direction of face.
func (p Position) Relative(face BlockFace) Position {
	o := face.offset()
	return p.Offset(o.X, o.Y, o.Z)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// BlockFace is a direction from a block to one of its neighbours.
type BlockFace uint8

const (
	North BlockFace = iota
	East
	South
	West
	Up
	Down

	NorthEast
	NorthWest
	SouthEast
	SouthWest

	NorthUp
	EastUp
	SouthUp
	WestUp
	NorthDown
	EastDown
	SouthDown
	WestDown
)

var blockFaceOffsets = [...]Position{
	North: {0, 0, -1},
	East:  {1, 0, 0},
	South: {0, 0, 1},
	West:  {-1, 0, 0},
	Up:    {0, 1, 0},
	Down:  {0, -1, 0},

	NorthEast: {1, 0, -1},
	NorthWest: {-1, 0, -1},
	SouthEast: {1, 0, 1},
	SouthWest: {-1, 0, 1},

	NorthUp:   {0, 1, -1},
	EastUp:    {1, 1, 0},
	SouthUp:   {0, 1, 1},
	WestUp:    {-1, 1, 0},
	NorthDown: {0, -1, -1},
	EastDown:  {1, -1, 0},
	SouthDown: {0, -1, 1},
	WestDown:  {-1, -1, 0},
}

// BlockFaces returns all block faces, the six cardinal ones first.
func BlockFaces() []BlockFace {
	faces := make([]BlockFace, len(blockFaceOffsets))
	for i := range faces {
		faces[i] = BlockFace(i)
	}
	return faces
}

func (f BlockFace) offset() Position {
	if int(f) >= len(blockFaceOffsets) {
		return Position{}
	}
	return blockFaceOffsets[f]
}

// Opposite returns the opposing cardinal face.
// Faces without a cardinal opposite return themselves and false.
func (f BlockFace) Opposite() (BlockFace, bool) {
	switch f {
	case Up:
		return Down, true
	case Down:
		return Up, true
	case East:
		return West, true
	case West:
		return East, true
	case North:
		return South, true
	case South:
		return North, true
	}
	return f, false
}
