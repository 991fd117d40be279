package models

import "errors"

// ErrEmptyInput signals that an extraction produced no records to work with.
var ErrEmptyInput = errors.New("input record set is empty")
