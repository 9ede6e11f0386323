// Package input tracks the viewer's logical key state, scroll and window
// events for one tick. The window package feeds it translated SDL events.
package input

// Key is a logical key the viewer reacts to.
type Key int

// Logical keys.
const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyScreenshot

	keyCount
)

var keyNames = [keyCount]string{"unknown", "escape", "w", "a", "s", "d", "screenshot"}

// String returns the key name.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// EventType identifies an Event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventScroll
)

// Event is a platform-independent input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Width  int
	Height int
	Scroll float32
}

// KeyState reports held keys.
type KeyState interface {
	IsKeyDown(k Key) bool
}

// State accumulates events between BeginTick calls.
type State struct {
	down    [keyCount]bool
	pressed [keyCount]bool

	scroll  float32
	quit    bool
	resized bool
	width   int
	height  int
}

// New creates an empty input state.
func New() *State {
	return &State{}
}

// BeginTick clears per-tick data. Held keys and the quit request persist.
func (s *State) BeginTick() {
	s.pressed = [keyCount]bool{}
	s.scroll = 0
	s.resized = false
}

// Apply folds one event into the state.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventQuit:
		s.quit = true

	case EventResize:
		s.resized = true
		s.width, s.height = e.Width, e.Height

	case EventKeyDown:
		if !valid(e.Key) {
			return
		}
		if !s.down[e.Key] && !e.Repeat {
			s.pressed[e.Key] = true
		}
		s.down[e.Key] = true
		if e.Key == KeyEscape {
			s.quit = true
		}

	case EventKeyUp:
		if valid(e.Key) {
			s.down[e.Key] = false
		}

	case EventScroll:
		s.scroll += e.Scroll
	}
}

func valid(k Key) bool {
	return k > KeyUnknown && k < keyCount
}

// IsKeyDown reports whether k is held.
func (s *State) IsKeyDown(k Key) bool {
	return valid(k) && s.down[k]
}

// WasPressed reports whether k went down during this tick.
func (s *State) WasPressed(k Key) bool {
	return valid(k) && s.pressed[k]
}

// Scroll returns the vertical scroll accumulated this tick.
func (s *State) Scroll() float32 {
	return s.scroll
}

// QuitRequested reports whether Escape or a window close was seen.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Resized returns the newest size if the window was resized this tick.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}
