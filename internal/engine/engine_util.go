package engine

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// FindEvent returns the first event of the given type, if any.
func FindEvent(events []Event, eventType EventType) (Event, bool) {
	for _, event := range events {
		if event.Type == eventType {
			return event, true
		}
	}
	return Event{}, false
}

// ClearFlash returns the state with the flash payload consumed.
func ClearFlash(s State) State {
	s.Flash = Flash{PointsEarned: NoFlash}
	return s
}
