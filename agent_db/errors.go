package agentdb

import "errors"

// NoSuchPathError indicates that a path is not part of the implemented
// data model or has no entry in the database.
type NoSuchPathError struct {
	Path string
}

func (e *NoSuchPathError) Error() string {
	return "NoSuchPath: " + e.Path
}

// ErrNotImplemented is returned when a table is on an allow list but
// has no insert or delete handling.
var ErrNotImplemented = errors.New("table modification not implemented")

// IsNoSuchPath reports whether err is a NoSuchPathError.
func IsNoSuchPath(err error) bool {
	var nsp *NoSuchPathError
	return errors.As(err, &nsp)
}
