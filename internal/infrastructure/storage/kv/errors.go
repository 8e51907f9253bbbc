package kv

import "errors"

var (
	ErrNotFound      = errors.New("key not found")
	ErrInvalidKey    = errors.New("invalid key")
	ErrDecode        = errors.New("stored value cannot be decoded")
	ErrWrite         = errors.New("value cannot be written")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrClosed        = errors.New("storage is closed")
)
