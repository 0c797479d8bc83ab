package repository

import "errors"

var (
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrNotCollection     = errors.New("collection is not an array of records")
)
