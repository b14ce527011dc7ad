package main

// Obstacle is a static axis-aligned rectangle, generated once per arena
// and shared read-only by all collision checks.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies strictly inside the rectangle
func (o Obstacle) Contains(x, y float64) bool {
	return x > o.X && x < o.X+o.Width && y > o.Y && y < o.Y+o.Height
}

// GenerateObstacles builds the arena's random obstacle layout
func GenerateObstacles(count int, worldW, worldH float64) []Obstacle {
	obstacles := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		obstacles = append(obstacles, Obstacle{
			X:      50 + randFloat()*(worldW-100),
			Y:      50 + randFloat()*(worldH-100),
			Width:  40 + randFloat()*60,
			Height: 40 + randFloat()*60,
		})
	}
	return obstacles
}
