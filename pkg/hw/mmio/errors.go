package mmio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWidth         = errors.New("invalid width")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrValueOutOfRange      = errors.New("value out of range")
	ErrInvalidFieldSpec     = errors.New("invalid bit field")
	ErrInvalidIndexKey      = errors.New("invalid index key")
	ErrInvalidRegisterWidth = errors.New("invalid register width")
	ErrUnknownValueType     = errors.New("unknown value type")
)

func makeError(err error, message string, args ...interface{}) error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}
