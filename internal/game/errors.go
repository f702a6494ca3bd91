// path: internal/game/errors.go
package game

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrMalformedTemplate = errors.New("malformed shape template")
	ErrNoAnchor          = errors.New("piece has no anchor")
	ErrAlreadyPlayed     = errors.New("shape kind already played")
)
