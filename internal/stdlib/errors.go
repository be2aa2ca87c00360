package stdlib

import (
	"leoscript/internal/errors"
	"leoscript/internal/token"
)

// errSelf mirrors the original's RuntimeError::ExpectedSelfForNativeFunction:
// every stdlib native function requires args[0] to be the right kind of
// receiver (an Object wrapping "_value" for Dictionary/String, anything for
// Math's stateless functions).
var errSelf = errors.New(errors.Runtime, "ExpectedSelfForNativeFunction", token.Position{}, "native function called without a valid receiver")

func argError(kind, message string) error {
	return errors.New(errors.Runtime, kind, token.Position{}, message)
}
