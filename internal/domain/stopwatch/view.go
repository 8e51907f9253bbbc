package stopwatch

import "time"

// View is what a rendering layer needs to draw one stopwatch card and bind
// its controls (toggle, reset, delete, name and time fields).
type View struct {
	Hash      string     `json:"hash"`
	Name      string     `json:"name"`
	Time      string     `json:"time"`
	Seconds   int64      `json:"seconds"`
	Running   bool       `json:"running"`
	UpdatedAt string     `json:"updated_at"`
	Updated   *time.Time `json:"-"`
	Alert     string     `json:"alert,omitempty"`
}
