package main

// CheckCollision checks if two circles overlap
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 <= radSum*radSum
}

// hitObstacle returns true if the point lies inside any obstacle.
// Movement and projectile checks both use the point's containment only;
// fast-moving entities are slow relative to obstacle sizes at arena scale.
func hitObstacle(obstacles []Obstacle, x, y float64) bool {
	for _, o := range obstacles {
		if o.Contains(x, y) {
			return true
		}
	}
	return false
}
