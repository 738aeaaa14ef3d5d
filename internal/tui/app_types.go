package tui

// Results of async work. Each carries the router generation it was issued under; a result
// whose generation is not the current one belongs to a page that is gone and is dropped.

type pageMsg struct {
	gen uint64
	err error
}

type activationMsg struct{ gen uint64 }

type profileMsg struct{ gen uint64 }

type submitMsg struct {
	gen  uint64
	sent bool
	err  error
}

// linkEvent is a link activation from the keyboard; the router cancels its default.
type linkEvent struct {
	href      string
	prevented bool
}

func (e *linkEvent) Href() string    { return e.href }
func (e *linkEvent) PreventDefault() { e.prevented = true }
