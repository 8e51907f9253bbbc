package kv

import (
	"context"
	"strings"
)

// Backend хранит сырые значения по строковому ключу.
// Отсутствующий ключ - ErrNotFound.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
