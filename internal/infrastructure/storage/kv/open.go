package kv

import (
	"context"
	"fmt"
	"path/filepath"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Drivers lists the accepted values of STORAGE_DRIVER.
var Drivers = []string{DriverFile, DriverSQLite, DriverPostgres, DriverMemory}

type Options struct {
	Driver      string
	Dir         string
	DatabaseURI string
}

// Open builds the backend selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(filepath.Join(opts.Dir, "store"))
	case DriverSQLite:
		return NewSQLite(ctx, filepath.Join(opts.Dir, "multistopwatch.db"))
	case DriverPostgres:
		if opts.DatabaseURI == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_URI")
		}
		return NewPostgres(ctx, opts.DatabaseURI)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
