package selection

// State holds all cursor-related state
type State struct {
	Index          int
	Count          int // length of the result set the index points into
	ViewportOffset int
	ViewportHeight int
}

// Direction represents cursor movements
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
	DirectionFirst    Direction = "first"
	DirectionLast     Direction = "last"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
)
