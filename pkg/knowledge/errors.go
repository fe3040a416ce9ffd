package knowledge

import (
	"errors"
	"fmt"
)

// ErrLoad matches every error returned by Load.
var ErrLoad = errors.New("knowledge base load failed")

// LoadError reports a knowledge base file that could not be read or
// created. It is fatal at startup.
type LoadError struct {
	Path string
	Op   string // "read", "mkdir" or "write"
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("knowledge base %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLoad) match any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
