package suggestion

// Panel is the visibility of the suggestion dropdown.
type Panel string

// Panel states.
const (
	Closed Panel = "closed"
	Open   Panel = "open"
)

// Event drives the panel.
type Event string

// Panel events.
const (
	EventFocus     Event = "focus"
	EventKeystroke Event = "keystroke"
	EventEscape    Event = "escape"
	EventBlur      Event = "blur"
	EventSubmit    Event = "submit"
)

// IsValid checks if the event is one of the supported values.
func (e Event) IsValid() bool {
	switch e {
	case EventFocus, EventKeystroke, EventEscape, EventBlur, EventSubmit:
		return true
	}
	return false
}

// On returns the panel state after e. Unknown events leave it unchanged.
func (p Panel) On(e Event) Panel {
	switch e {
	case EventFocus, EventKeystroke:
		return Open
	case EventEscape, EventBlur, EventSubmit:
		return Closed
	}
	if p == "" {
		return Closed
	}
	return p
}

// IsOpen reports whether the dropdown is visible.
func (p Panel) IsOpen() bool { return p == Open }
