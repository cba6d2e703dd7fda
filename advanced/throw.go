package advanced

import (
	"github.com/osuushi/linkroute/internal"
	"github.com/pkg/errors"
)

// Scene lookups fail the same way the kernel does: a panic carrying a
// GeometryError, recovered at the exported boundary.

type GeometryError = internal.GeometryError

func fatalf(format string, args ...interface{}) {
	panic(internal.NewGeometryError(errors.Errorf(format, args...)))
}

func HandleGeometryPanicRecover(r interface{}) error {
	return internal.HandleGeometryPanicRecover(r)
}
