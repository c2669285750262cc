package config

// ActionID represents a high-level intent decoded from device input
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionSelect
	ActionAct
	ActionQuit
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:      "NONE",
	ActionMoveLeft:  "MOVE_LEFT",
	ActionMoveRight: "MOVE_RIGHT",
	ActionMoveUp:    "MOVE_UP",
	ActionMoveDown:  "MOVE_DOWN",
	ActionSelect:    "SELECT",
	ActionAct:       "ACT",
	ActionQuit:      "QUIT",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "UNKNOWN"
	}
	return actionNames[a]
}

// IsMouse reports whether the intent is produced by a pointer button.
func (a ActionID) IsMouse() bool {
	return a == ActionSelect || a == ActionAct
}

// InputBinding lists device controls by name. Key names follow ebiten's
// key naming ("ArrowLeft", "A", "Escape"); mouse buttons are "left",
// "right" or "middle".
type InputBinding struct {
	Keys         []string `yaml:"keys"`
	MouseButtons []string `yaml:"mouse_buttons"`
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[ActionID]InputBinding{
			ActionMoveLeft:  {Keys: []string{"ArrowLeft", "A"}},
			ActionMoveRight: {Keys: []string{"ArrowRight", "D"}},
			ActionMoveUp:    {Keys: []string{"ArrowUp", "W"}},
			ActionMoveDown:  {Keys: []string{"ArrowDown", "S"}},
			ActionQuit:      {Keys: []string{"Escape", "Q"}},
			ActionSelect:    {MouseButtons: []string{"left"}},
			ActionAct:       {MouseButtons: []string{"right"}},
		},
	}
}
