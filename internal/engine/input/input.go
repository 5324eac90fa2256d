// Package input defines the platform-independent event model fed to the frame loop.
package input

// Kind identifies an event.
type Kind int

const (
	EventNone Kind = iota
	EventClose
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventButtonDown
	EventButtonUp
	EventScroll
	EventText
)

func (k Kind) String() string {
	switch k {
	case EventClose:
		return "close"
	case EventKeyDown:
		return "key_down"
	case EventKeyUp:
		return "key_up"
	case EventPointerMove:
		return "pointer_move"
	case EventButtonDown:
		return "button_down"
	case EventButtonUp:
		return "button_up"
	case EventScroll:
		return "scroll"
	case EventText:
		return "text"
	default:
		return "none"
	}
}

// Key is a logical key. Only the keys the viewer reacts to are named;
// everything else arrives as KeyOther with the platform code in Event.Code.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyEscape
	KeyScreenshot
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// ButtonCount is the number of tracked pointer buttons.
const ButtonCount = 3

// Event represents one processed platform event.
type Event struct {
	Kind    Kind
	Key     Key
	Code    uint32 // Platform key code, for consumers that need more than Key
	Repeat  bool   // Key down generated by auto-repeat while the key is held
	X       int32
	Y       int32
	Button  Button
	ScrollX float32
	ScrollY float32
	Text    string
}

// Pointer is the accumulated pointer-device state.
type Pointer struct {
	X, Y    int32
	Buttons [ButtonCount]bool
	ScrollX float32
	ScrollY float32
}

// Apply folds a pointer event into the state. Other events are ignored.
func (p *Pointer) Apply(e Event) {
	switch e.Kind {
	case EventPointerMove:
		p.X, p.Y = e.X, e.Y
	case EventButtonDown, EventButtonUp:
		p.X, p.Y = e.X, e.Y
		if e.Button >= 0 && int(e.Button) < ButtonCount {
			p.Buttons[e.Button] = e.Kind == EventButtonDown
		}
	case EventScroll:
		p.ScrollX += e.ScrollX
		p.ScrollY += e.ScrollY
	}
}

// ResetScroll clears the per-frame scroll delta.
func (p *Pointer) ResetScroll() {
	p.ScrollX, p.ScrollY = 0, 0
}
