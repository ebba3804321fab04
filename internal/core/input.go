package core

// Action is a semantic intent decoded from a key, a button or a drag.
// Games read actions; only the host knows about physical keys.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft  // steer, held
	ActionRight // steer, held
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	ActionSettings

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Confirm",
	"Back", "Restart", "Quit", "Pause", "Settings",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Pointer is a continuous horizontal target in screen columns,
// produced by mouse or touch drags.
type Pointer struct {
	X       int  // screen column
	Engaged bool // button held
	Set     bool // changed this frame
}

// InputFrame is the input of one simulation tick. The zero value is an
// empty frame and frames copy by value.
type InputFrame struct {
	actions uint32
	Pointer Pointer
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.actions |= 1 << a
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a >= actionCount {
		return false
	}
	return f.actions&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.actions == 0
}

// SetPointer records a drag position for this frame.
func (f *InputFrame) SetPointer(x int, engaged bool) {
	f.Pointer = Pointer{X: x, Engaged: engaged, Set: true}
}

// Clear drops this frame's actions. Pointer engagement survives; only its
// changed flag is reset.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Pointer.Set = false
}

// Clone returns a copy of f.
func (f InputFrame) Clone() InputFrame {
	return f
}
