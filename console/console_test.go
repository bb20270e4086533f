package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorSGR(t *testing.T) {
	tests := []struct {
		name string
		p    Paint
		fg   string
		bg   string
	}{
		{"default", Default, "39", "49"},
		{"red", Red, "31", "41"},
		{"white", White, "37", "47"},
		{"bright black", BrightBlack, "90", "100"},
		{"bright white", BrightWhite, "97", "107"},
		{"256", Color256(208), "38;5;208", "48;5;208"},
		{"rgb", RGB(colorful.Color{R: 1, G: 0.5, B: 0}), "38;2;255;128;0", "48;2;255;128;0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fg, tt.p.SGR(false))
			assert.Equal(t, tt.bg, tt.p.SGR(true))
		})
	}
}

func TestHex(t *testing.T) {
	c, err := Hex("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, "38;2;0;255;0", c.SGR(false))

	_, err = Hex("green")
	assert.Error(t, err)
}

func TestStyleRender(t *testing.T) {
	assert.Equal(t, "plain", Style{}.Render("plain"))
	assert.Equal(t, "\x1b[1;4;31;44mhi\x1b[m", Style{Fg: Red, Bg: Blue, Bold: true, Underline: true}.Render("hi"))
	assert.Equal(t, "\x1b[32mok\x1b[m", Fg(Green).Render("ok"))

	styled := Style{Fg: Color256(12), Italic: true}.Render("日本")
	assert.Equal(t, "日本", Strip(styled))
	assert.Equal(t, 4, Width(styled))
	assert.Equal(t, "日…", Strip(Truncate(styled, 3, "…")))
}

func TestLabelColorIsStable(t *testing.T) {
	a := LabelColor("worker-1")
	assert.Equal(t, a, LabelColor("worker-1"))
	for _, label := range []string{"", "a", "worker-1", "worker-2", "some much longer label"} {
		c := LabelColor(label)
		assert.GreaterOrEqual(t, int(c), 52, label)
		assert.LessOrEqual(t, int(c), 231, label)
	}
}

func TestDetectColor(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("NO_COLOR", "")
	assert.False(t, New(&bytes.Buffer{}).ColorEnabled(), "NO_COLOR disables colour")

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, New(&bytes.Buffer{}).ColorEnabled())

	t.Setenv("FORCE_COLOR", "0")
	assert.False(t, New(&bytes.Buffer{}).ColorEnabled(), "a buffer is not a terminal")
}

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.SetColor(false)

	c.Info("loaded %d files", 3)
	c.Warn("slow")
	c.Error("failed: %v", "boom")
	c.Success("done")
	c.Label("net", "connected")
	assert.Equal(t, "INFO  loaded 3 files\nWARN  slow\nERROR failed: boom\nOK    done\n[net] connected\n", buf.String())

	buf.Reset()
	c.SetColor(true)
	c.Warn("careful")
	assert.Equal(t, "\x1b[1;33mWARN \x1b[m careful\n", buf.String())
}

func TestConsolePrint(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.SetColor(true)

	_, err := c.Println(Fg(Red), "a", "b")
	require.NoError(t, err)
	_, err = c.Printf(Style{}, "%03d", 7)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[31ma b\x1b[m\n007", buf.String())
}

func TestControlSequences(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.SetColor(false)
	c.ClearScreen()
	c.MoveTo(2, 3)
	assert.Empty(t, buf.String(), "no control sequences without colour")

	c.SetColor(true)
	c.MoveTo(2, 3)
	c.CursorUp(1)
	c.CursorUp(3)
	c.CursorDown(0)
	c.CursorDown(2)
	c.HideCursor()
	c.ShowCursor()
	c.ClearLine()
	c.ClearScreen()
	assert.Equal(t, "\x1b[2;3H\x1b[A\x1b[3A\x1b[2B\x1b[?25l\x1b[?25h\r\x1b[2K\x1b[2J\x1b[H", buf.String())
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total int64
		width       int
		want        string
	}{
		{0, 100, 10, "[          ]   0%"},
		{42, 100, 10, "[====>     ]  42%"},
		{100, 100, 10, "[==========] 100%"},
		{150, 100, 4, "[====] 100%"},
		{5, 0, 4, "[    ]   0%"},
		{1, 100, 10, "[>         ]   1%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestProgressOutput(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.SetColor(false)
	c.Progress(512, 2048)
	assert.Empty(t, buf.String())
	c.Progress(2048, 2048)
	assert.True(t, strings.HasSuffix(buf.String(), "100% 2.0 KiB / 2.0 KiB\n"), buf.String())
}
