package core

// Color represents a foreground color for a screen cell or a playfield cell.
// ColorDefault doubles as the empty/background color of the playfield.
type Color uint8

// Palette. Piece colors come first so they stay stable for snapshots.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorWhite
	ColorGray
	ColorBrightWhite
)

// IsEmpty reports whether the color is the background color.
func (c Color) IsEmpty() bool {
	return c == ColorDefault
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "empty"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorOrange:
		return "orange"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorBrightWhite:
		return "bright-white"
	default:
		return "unknown"
	}
}

// Char returns a single character for plain-text dumps (screenshots, test output).
func (c Color) Char() rune {
	switch c {
	case ColorDefault:
		return '.'
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorMagenta:
		return 'M'
	case ColorCyan:
		return 'C'
	case ColorOrange:
		return 'O'
	default:
		return '#'
	}
}
