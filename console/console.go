package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

var (
	infoStyle    = Style{Fg: Cyan, Bold: true}
	successStyle = Style{Fg: Green, Bold: true}
	warnStyle    = Style{Fg: Yellow, Bold: true}
	errorStyle   = Style{Fg: Red, Bold: true}
)

// Console writes styled output to w. It is safe for concurrent use.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// New creates a Console on w with colour detected from the environment.
func New(w io.Writer) *Console {
	return &Console{w: w, color: detectColor(w)}
}

// Stdout returns a Console on os.Stdout.
func Stdout() *Console { return New(os.Stdout) }

// Stderr returns a Console on os.Stderr.
func Stderr() *Console { return New(os.Stderr) }

// detectColor enables colour for terminals unless NO_COLOR is set.
// FORCE_COLOR overrides both.
func detectColor(w io.Writer) bool {
	if v := os.Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) SetColor(on bool) {
	c.mu.Lock()
	c.color = on
	c.mu.Unlock()
}

func (c *Console) ColorEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.color
}

// Sprint renders text with st when colour is enabled.
func (c *Console) Sprint(st Style, a ...any) string {
	s := fmt.Sprint(a...)
	if c.ColorEnabled() {
		return st.Render(s)
	}
	return s
}

func (c *Console) write(s string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return io.WriteString(c.w, s)
}

func (c *Console) Print(st Style, a ...any) (int, error) {
	return c.write(c.Sprint(st, a...))
}

func (c *Console) Println(st Style, a ...any) (int, error) {
	return c.write(c.Sprint(st, strings.TrimSuffix(fmt.Sprintln(a...), "\n")) + "\n")
}

func (c *Console) Printf(st Style, format string, a ...any) (int, error) {
	return c.write(c.Sprint(st, fmt.Sprintf(format, a...)))
}

func (c *Console) tagged(tag string, st Style, format string, a ...any) {
	c.write(c.Sprint(st, tag) + " " + fmt.Sprintf(format, a...) + "\n")
}

func (c *Console) Info(format string, a ...any) { c.tagged("INFO ", infoStyle, format, a...) }
func (c *Console) Success(format string, a ...any) { c.tagged("OK   ", successStyle, format, a...) }
func (c *Console) Warn(format string, a ...any) { c.tagged("WARN ", warnStyle, format, a...) }
func (c *Console) Error(format string, a ...any) { c.tagged("ERROR", errorStyle, format, a...) }

// Label prints msg prefixed by label in a colour derived from the label.
func (c *Console) Label(label, msg string) {
	c.write(c.Sprint(Style{Fg: LabelColor(label)}, "["+label+"]") + " " + msg + "\n")
}

// control writes a control sequence when colour is enabled.
func (c *Console) control(seq string) {
	if c.ColorEnabled() {
		c.write(seq)
	}
}

func (c *Console) ClearScreen() { c.control(ansi.EraseEntireScreen + ansi.CursorHomePosition) }
func (c *Console) ClearLine() { c.control("\r" + ansi.EraseEntireLine) }
func (c *Console) HideCursor() { c.control(ansi.HideCursor) }
func (c *Console) ShowCursor() { c.control(ansi.ShowCursor) }

// MoveTo places the cursor at row and col, both 1-based.
func (c *Console) MoveTo(row, col int) {
	c.control(ansi.CursorPosition(max(col, 1), max(row, 1)))
}

func (c *Console) CursorUp(n int) {
	if n > 0 {
		c.control(ansi.CursorUp(n))
	}
}

func (c *Console) CursorDown(n int) {
	if n > 0 {
		c.control(ansi.CursorDown(n))
	}
}

// ProgressBar renders a bar of width cells followed by the percentage, for
// example "[====>     ]  42%". A total of zero or less reads as 0%.
func ProgressBar(done, total int64, width int) string {
	width = max(width, 1)
	var frac float64
	if total > 0 {
		frac = min(max(float64(done)/float64(total), 0), 1)
	}
	filled := int(frac * float64(width))
	var bar string
	switch {
	case filled >= width:
		bar = strings.Repeat("=", width)
	case filled == 0 && frac == 0:
		bar = strings.Repeat(" ", width)
	default:
		bar = strings.Repeat("=", filled) + ">" + strings.Repeat(" ", width-filled-1)
	}
	return fmt.Sprintf("[%s] %3d%%", bar, int(frac*100))
}

// Progress redraws a byte-count progress line in place. On terminals the
// line is rewritten; otherwise only the final state is printed.
func (c *Console) Progress(done, total int64) {
	line := ProgressBar(done, total, 30) + " " + humanize.IBytes(uint64(max(done, 0)))
	if total > 0 {
		line += " / " + humanize.IBytes(uint64(total))
	}
	finished := total > 0 && done >= total
	switch {
	case c.ColorEnabled():
		c.write("\r" + ansi.EraseEntireLine + line)
		if finished {
			c.write("\n")
		}
	case finished:
		c.write(line + "\n")
	}
}
