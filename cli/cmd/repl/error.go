package repl

import "errors"

//nolint:gochecknoglobals
var (
	ErrNoLoader     = errors.New("no variable loader")
	ErrOutOfBounds  = errors.New("history index out of range")
	ErrEditDeclined = errors.New("edit declined")
)
