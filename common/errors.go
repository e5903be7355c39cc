package common

// ErrInvalidInput appears when the method is called with a structurally
// invalid argument, e.g. an empty identity.
const ErrInvalidInput = "invalid input"
