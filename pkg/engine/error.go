package engine

import "errors"

var (
	ErrOrderPoolExhausted = errors.New("order pool exhausted")
	ErrLevelPoolExhausted = errors.New("level pool exhausted")
)
