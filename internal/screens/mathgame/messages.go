package mathgame

// startedMsg is sent once the saved score is loaded and the first
// question has been requested.
type startedMsg struct {
	err error
}

// submittedMsg is sent when an answer has been checked and any new
// score persisted.
type submittedMsg struct {
	correct bool
	err     error
}
