package stopwatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Collection owns the live stopwatches of one session in load/creation order.
type Collection struct {
	deps *Deps

	mu      sync.Mutex
	items   []*Stopwatch
	display Display
}

// Open reads every stored record and builds one live stopwatch per record.
// Records repeating an already loaded hash are skipped.
func Open(deps *Deps) (*Collection, error) {
	if deps == nil || deps.Repo == nil || deps.Scheduler == nil {
		return nil, errors.New("stopwatch: repository and scheduler are required")
	}
	d := deps.withDefaults()
	c := &Collection{deps: d}

	seen := make(map[string]struct{})
	for _, rec := range d.Repo.All() {
		if _, dup := seen[rec.Hash]; dup && rec.Hash != "" {
			d.Log.Warn("skipping duplicate stopwatch record", "hash", rec.Hash)
			continue
		}

		rec := rec
		sw, err := build(d, &rec, "")
		if err != nil {
			d.Log.Error("failed to restore stopwatch", "hash", rec.Hash, "error", err)
		}
		seen[sw.Hash()] = struct{}{}
		c.items = append(c.items, sw)
	}

	d.Log.Debug("stopwatch collection opened", "count", len(c.items))
	return c, nil
}

// Create builds a brand-new stopwatch (persisted immediately) and appends it.
func (c *Collection) Create() (*Stopwatch, error) {
	c.mu.Lock()
	// a hash drawn in the same process never repeats, but one written by
	// another session may already be in the store
	var hash string
	for {
		hash = c.deps.Hashes.Next(c.deps.Clock.Now())
		if !c.hasLocked(hash) && !c.storedLocked(hash) {
			break
		}
	}

	sw, err := build(c.deps, nil, hash)
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("create stopwatch: %w", err)
	}
	c.items = append(c.items, sw)
	d := c.display
	c.mu.Unlock()

	if d != nil {
		sw.Attach(d)
	}
	c.deps.Log.Info("stopwatch created", "hash", hash)

	return sw, nil
}

// List returns the live stopwatches in order.
func (c *Collection) List() []*Stopwatch {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Stopwatch, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Get returns the stopwatch with exactly this hash.
func (c *Collection) Get(hash string) (*Stopwatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sw := range c.items {
		if sw.Hash() == hash {
			return sw, nil
		}
	}
	return nil, ErrNotFound
}

// Find resolves a user reference: 1-based position, full hash or an
// unambiguous hash prefix.
func (c *Collection) Find(ref string) (*Stopwatch, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.items) {
		return c.items[n-1], nil
	}

	var match *Stopwatch
	for _, sw := range c.items {
		h := sw.Hash()
		if h == ref {
			return sw, nil
		}
		if strings.HasPrefix(h, ref) {
			if match != nil {
				return nil, fmt.Errorf("%w: %q is ambiguous", ErrNotFound, ref)
			}
			match = sw
		}
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

// Delete removes the stopwatch from the store and from the collection.
func (c *Collection) Delete(hash string) error {
	sw, err := c.Get(hash)
	if err != nil {
		return err
	}
	if err := sw.Delete(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item == sw {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return nil
}

// Attach binds every current and future stopwatch to the display.
func (c *Collection) Attach(d Display) {
	c.mu.Lock()
	c.display = d
	items := make([]*Stopwatch, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	for _, sw := range items {
		sw.Attach(d)
	}
}

// Views returns the visual representation of every stopwatch in order.
func (c *Collection) Views() []View {
	items := c.List()
	out := make([]View, 0, len(items))
	for _, sw := range items {
		out = append(out, sw.View())
	}
	return out
}

// RunningCount reports how many stopwatches currently tick.
func (c *Collection) RunningCount() int {
	n := 0
	for _, sw := range c.List() {
		if sw.Running() {
			n++
		}
	}
	return n
}

// Close releases every scheduled task. Stored state is left as is.
func (c *Collection) Close() {
	c.mu.Lock()
	items := c.items
	c.items = nil
	c.display = nil
	c.mu.Unlock()

	for _, sw := range items {
		sw.Release()
	}
}

func (c *Collection) hasLocked(hash string) bool {
	for _, sw := range c.items {
		if sw.Hash() == hash {
			return true
		}
	}
	return false
}

func (c *Collection) storedLocked(hash string) bool {
	for _, rec := range c.deps.Repo.All() {
		if rec.Hash == hash {
			return true
		}
	}
	return false
}
