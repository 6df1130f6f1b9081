package navigation

// NewState returns a closed popup with nothing focused
func NewState() State {
	return State{Focused: -1}
}

// Apply runs one input against a list of the given length.
// It never fails: inputs that cannot apply leave the cursor alone.
func (s *State) Apply(in Input, length int) Transition {
	var t Transition
	wasOpen := s.Open

	switch in.Event {
	case EventToggle:
		s.Open = !s.Open
	case EventOpen:
		s.Open = true
	case EventClose, EventKeyEscape, EventOutsideInteraction:
		s.Open = false
	case EventKeyEnter:
		if s.Open && s.Focused >= 0 && s.Focused < length {
			t.Commit = true
			t.Index = s.Focused
		}
		s.Open = false
	case EventPointerSelect:
		if in.Index >= 0 && in.Index < length {
			t.Commit = true
			t.Index = in.Index
			s.Open = false
		}
	case EventKeyArrowDown:
		if length > 0 {
			s.Focused = mod(s.Focused+1, length)
		}
	case EventKeyArrowUp:
		if length > 0 {
			s.Focused = mod(s.Focused-1+length, length)
		}
	case EventKeyHome:
		if length > 0 {
			s.Focused = 0
		}
	case EventKeyEnd:
		if length > 0 {
			s.Focused = length - 1
		}
	}

	t.OpenChanged = wasOpen != s.Open
	return t
}

// Clamp pulls a stale cursor back inside a list that has shrunk.
// An empty list leaves nothing focused.
func (s *State) Clamp(length int) {
	if s.Focused >= length {
		s.Focused = length - 1
	}
	if s.Focused < -1 {
		s.Focused = -1
	}
}

// mod is a remainder that stays non-negative for a cursor of -1 or less
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
