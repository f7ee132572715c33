package service

import "errors"

// ErrInvalidID is returned for empty or malformed competitor ids.
var ErrInvalidID = errors.New("invalid competitor id")
