package tetris

var colorMap = map[Shape]string{
	I: "#00bcd4",
	O: "#ffc107",
	Z: "#e91e63",
	S: "#4caf50",
	L: "#ff9800",
	J: "#2196f3",
	T: "#9c27b0",
}

// Color returns the hex color the shape is rendered with.
func (s Shape) Color() string {
	return colorMap[s]
}
