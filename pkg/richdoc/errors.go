package richdoc

import "errors"

var (
	ErrOutOfRange        = errors.New("richdoc: out of range")
	ErrUnparseableMarkup = errors.New("richdoc: unparseable markup")
	ErrInvalidDocument   = errors.New("richdoc: invalid document")
)
