package navigation

// FootprintPassability pre-computes valid center positions for a wide agent
// A cell is valid iff every cell within the footprint radius is in bounds
// and free of walls
type FootprintPassability struct {
	Width, Height int
	Radius        int // Footprint radius in cells beyond the center
	Valid         []bool
	Stale         bool // True when the wall grid changed since Compute
}

// NewFootprintPassability creates a passability grid for the given radius
func NewFootprintPassability(mapW, mapH, radius int) *FootprintPassability {
	return &FootprintPassability{
		Width:  mapW,
		Height: mapH,
		Radius: radius,
		Valid:  make([]bool, mapW*mapH),
		Stale:  true,
	}
}

// Resize adjusts dimensions, invalidates all cells
func (p *FootprintPassability) Resize(width, height int) {
	size := width * height
	if cap(p.Valid) < size {
		p.Valid = make([]bool, size)
	} else {
		p.Valid = p.Valid[:size]
		for i := range p.Valid {
			p.Valid[i] = false
		}
	}
	p.Width = width
	p.Height = height
	p.Stale = true
}

// Compute rebuilds the passability grid from wall state
// isWall: returns true if cell blocks footprint movement
func (p *FootprintPassability) Compute(isWall WallChecker) {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			p.Valid[y*p.Width+x] = p.canOccupy(x, y, isWall)
		}
	}
	p.Stale = false
}

// canOccupy checks if the footprint fits centered at (x,y)
func (p *FootprintPassability) canOccupy(centerX, centerY int, isWall WallChecker) bool {
	if centerX-p.Radius < 0 || centerY-p.Radius < 0 ||
		centerX+p.Radius >= p.Width || centerY+p.Radius >= p.Height {
		return false
	}

	for dy := -p.Radius; dy <= p.Radius; dy++ {
		for dx := -p.Radius; dx <= p.Radius; dx++ {
			if isWall(centerX+dx, centerY+dy) {
				return false
			}
		}
	}
	return true
}

// IsBlocked returns true if the footprint cannot center on (x,y)
// Used as WallChecker for wide-agent flow field queries
func (p *FootprintPassability) IsBlocked(x, y int) bool {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return true
	}
	return !p.Valid[y*p.Width+x]
}

// IsValid returns true if the footprint can center on (x,y)
func (p *FootprintPassability) IsValid(x, y int) bool {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return false
	}
	return p.Valid[y*p.Width+x]
}

// ComputeROI rebuilds passability for centers within [minX,maxX] × [minY,maxY]
// Bounds are clamped to grid dimensions. Footprint checks extend beyond the
// ROI into the full map via the isWall callback
func (p *FootprintPassability) ComputeROI(isWall WallChecker, minX, minY, maxX, maxY int) {
	minX = max(0, minX)
	minY = max(0, minY)
	maxX = min(p.Width-1, maxX)
	maxY = min(p.Height-1, maxY)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p.Valid[y*p.Width+x] = p.canOccupy(x, y, isWall)
		}
	}
}
