package internal

import "github.com/pkg/errors"

// Structural failures in the kernel panic with a GeometryError. The public API
// recovers them into plain errors.

type GeometryError struct {
	error
}

func NewGeometryError(err error) GeometryError { return GeometryError{err} }
func (e GeometryError) Unwrap() error            { return e.error }

// Panic with a GeometryError.
func fatalf(format string, args ...interface{}) {
	panic(GeometryError{errors.Errorf(format, args...)})
}

func HandleGeometryPanicRecover(r interface{}) error {
	if r != nil {
		if geometryError, ok := r.(GeometryError); ok {
			return geometryError
		}
		panic(r)
	}
	return nil
}

// Run fn, converting a geometry panic into an error.
func Catch(fn func()) (err error) {
	defer func() {
		err = HandleGeometryPanicRecover(recover())
	}()
	fn()
	return nil
}
