package model

// ModeState tracks whether a module is in training or evaluation mode.
// Embed it to get the Train/Eval/Training part of Module.
//
// Modules start in training mode.
type ModeState struct {
	eval bool
}

// Train switches to training mode.
func (s *ModeState) Train() {
	s.eval = false
}

// Eval switches to evaluation mode.
func (s *ModeState) Eval() {
	s.eval = true
}

// Training reports whether the module is in training mode.
func (s *ModeState) Training() bool {
	return !s.eval
}
