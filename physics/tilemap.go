package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// GridCoord addresses a tile grid cell.
type GridCoord struct {
	X, Y int
}

// Add returns the coordinate offset by o.
func (c GridCoord) Add(o GridCoord) GridCoord {
	return GridCoord{X: c.X + o.X, Y: c.Y + o.Y}
}

var neighborDirections = [4]struct {
	offset GridCoord
	dir    NormalFilter
}{
	{GridCoord{X: -1}, NormalNegX},
	{GridCoord{X: 1}, NormalPosX},
	{GridCoord{Y: -1}, NormalNegY},
	{GridCoord{Y: 1}, NormalPosY},
}

// TileMap indexes tile bodies by grid cell and keeps their normal filters in
// sync with neighboring occupancy, so that seams between adjacent tiles never
// produce contact normals.
type TileMap struct {
	tileSize cp.Vector
	cells    map[GridCoord][]*RigidBody
	index    map[*RigidBody]GridCoord
}

// NewTileMap returns an empty tile map for the given tile size.
func NewTileMap(tileSize cp.Vector) *TileMap {
	return &TileMap{
		tileSize: tileSize,
		cells:    make(map[GridCoord][]*RigidBody),
		index:    make(map[*RigidBody]GridCoord),
	}
}

// TileSize returns the size of a grid cell.
func (m *TileMap) TileSize() cp.Vector {
	return m.tileSize
}

// maxCell bounds grid indices to integers a float64 represents exactly.
const maxCell = 1 << 53

// Coord returns the cell nearest to a world position. Panics when the
// position is not finite or lies beyond the addressable grid.
func (m *TileMap) Coord(p cp.Vector) GridCoord {
	x := math.Round(p.X / m.tileSize.X)
	y := math.Round(p.Y / m.tileSize.Y)
	if !(math.Abs(x) <= maxCell) || !(math.Abs(y) <= maxCell) {
		panic(fmt.Sprintf("physics: non-finite or out-of-range tile position (%v, %v)", p.X, p.Y))
	}
	return GridCoord{X: int(x), Y: int(y)}
}

// CellCenter returns the world position a tile in cell c snaps to.
func (m *TileMap) CellCenter(c GridCoord) cp.Vector {
	return cp.Vector{X: float64(c.X) * m.tileSize.X, Y: float64(c.Y) * m.tileSize.Y}
}

// Occupied reports whether any tile occupies c.
func (m *TileMap) Occupied(c GridCoord) bool {
	return len(m.cells[c]) > 0
}

// Occupants returns a copy of the tiles in c.
func (m *TileMap) Occupants(c GridCoord) []*RigidBody {
	bodies := m.cells[c]
	if len(bodies) == 0 {
		return nil
	}
	return append([]*RigidBody(nil), bodies...)
}

// CellOf returns the cell a registered tile body occupies.
func (m *TileMap) CellOf(b *RigidBody) (GridCoord, bool) {
	c, ok := m.index[b]
	return c, ok
}

// Len returns the number of occupied cells.
func (m *TileMap) Len() int {
	return len(m.cells)
}

// Cells returns the occupied cells in no particular order.
func (m *TileMap) Cells() []GridCoord {
	out := make([]GridCoord, 0, len(m.cells))
	for c := range m.cells {
		out = append(out, c)
	}
	return out
}

// CreateTile registers b in the cell nearest to its position and returns
// that cell's center.
func (m *TileMap) CreateTile(b *RigidBody) cp.Vector {
	c := m.Coord(b.position)
	m.add(b, c)
	m.recomputeNeighborhood(c)
	b.world.logger.Debug("TileMap: tile created", "body", b.id, "x", c.X, "y", c.Y)
	return m.CellCenter(c)
}

// UpdateTile moves b from the cell of oldPos to the cell of newPos and
// returns the center of the cell b ends up in.
func (m *TileMap) UpdateTile(b *RigidBody, oldPos, newPos cp.Vector) cp.Vector {
	from, ok := m.index[b]
	if !ok {
		from = m.Coord(oldPos)
	}
	to := m.Coord(newPos)
	if ok && from == to {
		return m.CellCenter(to)
	}

	if ok {
		m.remove(b, from)
		m.recomputeNeighborhood(from)
	}
	m.add(b, to)
	m.recomputeNeighborhood(to)
	return m.CellCenter(to)
}

// RemoveTile unregisters b. Unknown bodies are ignored.
func (m *TileMap) RemoveTile(b *RigidBody) {
	c, ok := m.index[b]
	if !ok {
		return
	}
	m.remove(b, c)
	m.recomputeNeighborhood(c)
}

func (m *TileMap) add(b *RigidBody, c GridCoord) {
	m.cells[c] = append(m.cells[c], b)
	m.index[b] = c
}

func (m *TileMap) remove(b *RigidBody, c GridCoord) {
	delete(m.index, b)
	bodies := m.cells[c]
	for i, other := range bodies {
		if other == b {
			bodies = append(bodies[:i], bodies[i+1:]...)
			break
		}
	}
	if len(bodies) == 0 {
		delete(m.cells, c)
		return
	}
	m.cells[c] = bodies
}

func (m *TileMap) recomputeNeighborhood(c GridCoord) {
	m.recomputeFilters(c)
	for _, n := range neighborDirections {
		m.recomputeFilters(c.Add(n.offset))
	}
}

func (m *TileMap) recomputeFilters(c GridCoord) {
	bodies := m.cells[c]
	if len(bodies) == 0 {
		return
	}
	filter := NormalAll
	for _, n := range neighborDirections {
		if m.Occupied(c.Add(n.offset)) {
			filter &^= n.dir
		}
	}
	for _, b := range bodies {
		b.filter = filter
	}
}
