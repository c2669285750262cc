package entity

// Direction is the facing of an entity.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
	directionCount
)

var directionNames = [directionCount]string{
	Up:    "UP",
	Right: "RIGHT",
	Down:  "DOWN",
	Left:  "LEFT",
}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return "UNKNOWN"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the four facings.
func (d Direction) Valid() bool {
	return d >= 0 && d < directionCount
}

// State is the animation state of an entity.
type State int

const (
	Idle State = iota
	Walking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Walking:
		return "WALKING"
	default:
		return "UNKNOWN"
	}
}

// sheetRows maps sprite sheet rows to the direction they animate.
var sheetRows = [directionCount]Direction{Down, Left, Right, Up}
