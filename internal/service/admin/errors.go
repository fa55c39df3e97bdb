package admin

import (
	"errors"
)

var (
	ErrEventConflict = errors.New("event already exists")
)
