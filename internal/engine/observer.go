package engine

// StopReason records why a run ended.
type StopReason uint8

const (
	// StopRequested is an explicit Stop from the driver.
	StopRequested StopReason = iota
	// StopCell means a token reached a stop cell.
	StopCell
	// StopExhausted means the last token left the grid or was trashed.
	StopExhausted
)

func (r StopReason) String() string {
	switch r {
	case StopCell:
		return "stop cell"
	case StopExhausted:
		return "no tokens left"
	}
	return "requested"
}

// Observer receives engine side effects. Callbacks run synchronously inside
// the engine call that caused them and must not call back into the engine.
type Observer interface {
	Printed(segs []Segment)
	Sound()
	Secret()
	InputRequested(pending []PendingInput)
	Stopped(reason StopReason)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) Printed([]Segment)             {}
func (NopObserver) Sound()                        {}
func (NopObserver) Secret()                       {}
func (NopObserver) InputRequested([]PendingInput) {}
func (NopObserver) Stopped(StopReason)            {}

// ObserverFuncs adapts optional callbacks to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnPrinted        func(segs []Segment)
	OnSound          func()
	OnSecret         func()
	OnInputRequested func(pending []PendingInput)
	OnStopped        func(reason StopReason)
}

func (f ObserverFuncs) Printed(segs []Segment) {
	if f.OnPrinted != nil {
		f.OnPrinted(segs)
	}
}

func (f ObserverFuncs) Sound() {
	if f.OnSound != nil {
		f.OnSound()
	}
}

func (f ObserverFuncs) Secret() {
	if f.OnSecret != nil {
		f.OnSecret()
	}
}

func (f ObserverFuncs) InputRequested(pending []PendingInput) {
	if f.OnInputRequested != nil {
		f.OnInputRequested(pending)
	}
}

func (f ObserverFuncs) Stopped(reason StopReason) {
	if f.OnStopped != nil {
		f.OnStopped(reason)
	}
}
