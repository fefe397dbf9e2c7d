package split

const pathInitializeSplitMsg = "split/initialize"

// Path returns the routing path for this message.
func (InitializeSplitMsg) Path() string {
	return pathInitializeSplitMsg
}

// Validate accepts any combination of percentages. A sum other than 100 is
// not a malformed request, it is answered with false.
func (m *InitializeSplitMsg) Validate() error {
	return nil
}
