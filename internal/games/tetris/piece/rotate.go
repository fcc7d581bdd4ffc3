package piece

// Rotated returns the definition's mask turned to the given orientation,
// together with the rotated bounding-box width and height.
//
//	North: identity
//	East:  (x, y) -> (h-1-y, x), width/height swap
//	South: (x, y) -> (w-1-x, h-1-y)
//	West:  (x, y) -> (y, w-1-x), width/height swap
func Rotated(def Definition, o Orientation) (Mask, int, int) {
	w, h := def.Width, def.Height

	var out Mask
	for y := range h {
		for x := range w {
			if !def.Mask[y][x] {
				continue
			}
			var nx, ny int
			switch o {
			case East:
				nx, ny = h-1-y, x
			case South:
				nx, ny = w-1-x, h-1-y
			case West:
				nx, ny = y, w-1-x
			default:
				nx, ny = x, y
			}
			out[ny][nx] = true
		}
	}

	if o == East || o == West {
		return out, h, w
	}
	return out, w, h
}

// RotateClockwise turns an arbitrary w x h mask a quarter turn clockwise.
// Applying it four times returns the input.
func RotateClockwise(m Mask, w, h int) (Mask, int, int) {
	var out Mask
	for y := range h {
		for x := range w {
			if m[y][x] {
				out[x][h-1-y] = true
			}
		}
	}
	return out, h, w
}
