// Package grid maps linear indices onto fixed-width cell layouts.
package grid

// GetGridCoords returns the column and row of index in a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Window returns the [start, end) slice of n rows visible when scrolled to
// top with height rows on screen. top is clamped so the view never runs
// past the last row.
func Window(n, top, height int) (start, end int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	if top > n-height {
		top = n - height
	}
	if top < 0 {
		top = 0
	}
	end = top + height
	if end > n {
		end = n
	}
	return top, end
}
