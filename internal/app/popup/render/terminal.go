package render

import (
	"bytes"
	"io"
	"sync"

	"multistopwatch/internal/app/popup"
	"multistopwatch/internal/domain/stopwatch"
)

const clearScreen = "\033[H\033[2J"

// Terminal перерисовывает весь список при каждом изменении карточки.
// Держит собственную копию представлений и не обращается к коллекции,
// поэтому безопасен для вызова из тиков.
type Terminal struct {
	mu      sync.Mutex
	out     io.Writer
	shell   popup.Shell
	palette Palette
	clear   bool
	footer  string

	order []string
	views map[string]stopwatch.View
}

func NewTerminal(out io.Writer, shell popup.Shell, clear bool) *Terminal {
	return &Terminal{
		out:     out,
		shell:   shell,
		palette: PaletteFor(shell.Theme),
		clear:   clear,
		views:   make(map[string]stopwatch.View),
	}
}

// Refresh реализует stopwatch.Display
func (t *Terminal) Refresh(v stopwatch.View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.views[v.Hash]; !ok {
		t.order = append(t.order, v.Hash)
	}
	t.views[v.Hash] = v
	t.drawLocked()
}

// Remove реализует stopwatch.Remover
func (t *Terminal) Remove(hash string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.views[hash]; !ok {
		return
	}
	delete(t.views, hash)
	for i, h := range t.order {
		if h == hash {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.drawLocked()
}

// SetShell применяет новую оболочку (например, после смены темы)
func (t *Terminal) SetShell(shell popup.Shell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.shell = shell
	t.palette = PaletteFor(shell.Theme)
	t.drawLocked()
}

// SetFooter задает строку под таблицей (подсказка или результат команды)
func (t *Terminal) SetFooter(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.footer = s
	t.drawLocked()
}

func (t *Terminal) Redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drawLocked()
}

// Views возвращает текущие представления в порядке отображения
func (t *Terminal) Views() []stopwatch.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewsLocked()
}

func (t *Terminal) viewsLocked() []stopwatch.View {
	out := make([]stopwatch.View, 0, len(t.order))
	for _, h := range t.order {
		out = append(out, t.views[h])
	}
	return out
}

func (t *Terminal) drawLocked() {
	// кадр пишется одним вызовом Write
	var buf bytes.Buffer
	if t.clear {
		buf.WriteString(clearScreen)
	}
	_ = Table(&buf, t.shell, t.viewsLocked(), t.palette)
	if t.footer != "" {
		buf.WriteString(t.footer)
		buf.WriteString("\n")
	}
	_, _ = t.out.Write(buf.Bytes())
}
