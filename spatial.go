package main

import "math"

const SpatialCellSize = 80.0 // ~2x largest hostile radius

// SpatialGrid is a uniform grid for broad-phase collision queries. The grid
// covers a square of half-size extent around its center; positions outside
// are clamped into the border cells.
type SpatialGrid struct {
	extent float64
	center Vec2
	cols   int
	cells  [][]*Agent
}

// NewSpatialGrid creates a grid covering [-extent, extent] on both axes
// around the origin
func NewSpatialGrid(extent float64) *SpatialGrid {
	cols := int(math.Ceil(2*extent/SpatialCellSize)) + 1
	return &SpatialGrid{
		extent: extent,
		cols:   cols,
		cells:  make([][]*Agent, cols*cols),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Recenter clears the grid and moves it to cover the square around c
func (g *SpatialGrid) Recenter(c Vec2) {
	g.Clear()
	g.center = c
}

func (g *SpatialGrid) cellCoord(v, center float64) int {
	c := int((v - center + g.extent) / SpatialCellSize)
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

// InsertCircle adds an agent to all cells overlapping its bounding box
func (g *SpatialGrid) InsertCircle(a *Agent) {
	minCX, maxCX := g.cellCoord(a.Pos.X-a.Radius, g.center.X), g.cellCoord(a.Pos.X+a.Radius, g.center.X)
	minCY, maxCY := g.cellCoord(a.Pos.Y-a.Radius, g.center.Y), g.cellCoord(a.Pos.Y+a.Radius, g.center.Y)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], a)
		}
	}
}

// QueryBuf appends every agent in cells overlapping the box around pos to
// buf, without duplicates, in insertion order per cell
func (g *SpatialGrid) QueryBuf(pos Vec2, radius float64, buf []*Agent) []*Agent {
	minCX, maxCX := g.cellCoord(pos.X-radius, g.center.X), g.cellCoord(pos.X+radius, g.center.X)
	minCY, maxCY := g.cellCoord(pos.Y-radius, g.center.Y), g.cellCoord(pos.Y+radius, g.center.Y)
	start := len(buf)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, a := range g.cells[cy*g.cols+cx] {
				if !containsAgent(buf[start:], a) {
					buf = append(buf, a)
				}
			}
		}
	}
	return buf
}

func containsAgent(list []*Agent, a *Agent) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
