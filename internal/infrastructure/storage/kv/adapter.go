package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/exp/slog"
)

const DefaultTimeout = 2 * time.Second

var storeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "msw_store_operations_total",
		Help: "Operations on the key-value store by kind and result",
	},
	[]string{"op", "result"},
)

// Adapter stores JSON-encoded values of one type over a Backend. Failures
// never reach the caller: Get falls back to the zero value and Set reports
// false, both after logging.
type Adapter[T any] struct {
	backend Backend
	log     *slog.Logger
	timeout time.Duration
}

func NewAdapter[T any](backend Backend, log *slog.Logger, timeout time.Duration) *Adapter[T] {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter[T]{
		backend: backend,
		log:     log.With("component", "kv"),
		timeout: timeout,
	}
}

// Get returns the stored value, or the zero value when the key is missing,
// unreadable or undecodable.
func (a *Adapter[T]) Get(key string) T {
	var out T

	v, err := a.Load(key)
	switch {
	case err == nil:
		storeOperationsTotal.WithLabelValues("get", "ok").Inc()
		return v
	case errors.Is(err, ErrNotFound):
		storeOperationsTotal.WithLabelValues("get", "miss").Inc()
	case errors.Is(err, ErrDecode):
		storeOperationsTotal.WithLabelValues("get", "error").Inc()
		a.log.Warn("stored value ignored", "key", key, "error", err)
	default:
		storeOperationsTotal.WithLabelValues("get", "error").Inc()
		a.log.Error("failed to read from store", "key", key, "error", err)
	}
	return out
}

// Set replaces the value under key. It reports whether the write succeeded.
func (a *Adapter[T]) Set(key string, value T) bool {
	if err := a.Store(key, value); err != nil {
		storeOperationsTotal.WithLabelValues("set", "error").Inc()
		a.log.Error("failed to write to store", "key", key, "error", err)
		return false
	}
	storeOperationsTotal.WithLabelValues("set", "ok").Inc()
	return true
}

// Load is Get with the error exposed.
func (a *Adapter[T]) Load(key string) (T, error) {
	var out T
	if err := validateKey(key); err != nil {
		return out, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	raw, err := a.backend.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out, nil
}

// Store is Set with the error exposed.
func (a *Adapter[T]) Store(key string, value T) error {
	if err := validateKey(key); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrWrite, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.backend.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
