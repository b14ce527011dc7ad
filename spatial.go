package main

const (
	SpatialCellSize = 80.0 // ~2x ship radius with margin
	SpatialCols     = 26   // ceil(2000/80) + 1
	SpatialRows     = 26
)

// SpatialGrid is a fixed-size broad-phase grid over the arena. Cells hold
// indices into a caller-owned flat entity list rebuilt each tick; capacity
// is retained across ticks so steady-state queries allocate nothing.
type SpatialGrid struct {
	cells [SpatialCols * SpatialRows][]int
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func cellIdx(x, y float64) int {
	cx := int(x / SpatialCellSize)
	cy := int(y / SpatialCellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= SpatialCols {
		cx = SpatialCols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= SpatialRows {
		cy = SpatialRows - 1
	}
	return cy*SpatialCols + cx
}

// Insert adds an entity index at the given position
func (g *SpatialGrid) Insert(x, y float64, idx int) {
	g.cells[cellIdx(x, y)] = append(g.cells[cellIdx(x, y)], idx)
}

// QueryBuf appends the indices of all cells overlapping the bounding box
// of the query circle to buf and returns the extended slice.
func (g *SpatialGrid) QueryBuf(x, y, radius float64, buf []int) []int {
	minCX := int((x - radius) / SpatialCellSize)
	maxCX := int((x + radius) / SpatialCellSize)
	minCY := int((y - radius) / SpatialCellSize)
	maxCY := int((y + radius) / SpatialCellSize)
	if minCX < 0 {
		minCX = 0
	}
	if maxCX >= SpatialCols {
		maxCX = SpatialCols - 1
	}
	if minCY < 0 {
		minCY = 0
	}
	if maxCY >= SpatialRows {
		maxCY = SpatialRows - 1
	}
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*SpatialCols+cx]...)
		}
	}
	return buf
}
