package database

import "errors"

// ErrRunNotFound is returned when the requested run id does not exist
// in the database.
var ErrRunNotFound = errors.New("run not found")
