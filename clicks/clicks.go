package clicks

// Click is the i3bar click event written back to the status command.
type Click struct {
	Name      string   `json:"name,omitempty"`
	Instance  string   `json:"instance,omitempty"`
	Button    Button   `json:"button"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	RelativeX int      `json:"relative_x"`
	RelativeY int      `json:"relative_y"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Modifiers []string `json:"modifiers"`
}

// Button uses X11 button numbers, as the protocol does.
type Button int

const (
	ButtonNone       Button = 0
	ButtonLeft       Button = 1
	ButtonMiddle     Button = 2
	ButtonRight      Button = 3
	ButtonWheelUp    Button = 4
	ButtonWheelDown  Button = 5
	ButtonWheelLeft  Button = 6
	ButtonWheelRight Button = 7
	ButtonBack       Button = 8
	ButtonForward    Button = 9
)

// Identity is what a block click region resolves to.
type Identity struct {
	Name     string `json:"name,omitempty"`
	Instance string `json:"instance,omitempty"`
}
