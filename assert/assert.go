package assert

import "github.com/oomph-ac/charsim/oerror"

// IsTrue panics with an *oerror.Error if ok is false. It guards internal invariants that can only be
// broken by a programming error, never by user input.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
