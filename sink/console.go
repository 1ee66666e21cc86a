package sink

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000000"

// labels follow the classic "I, [time #pid]  INFO -- prog: msg" layout.
var labels = map[Level]string{
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarn:    "WARN",
	LevelError:   "ERROR",
	LevelFatal:   "FATAL",
	LevelUnknown: "ANY",
}

var labelColors = map[Level]color.Attribute{
	LevelDebug:   color.FgCyan,
	LevelInfo:    color.FgGreen,
	LevelWarn:    color.FgYellow,
	LevelError:   color.FgRed,
	LevelFatal:   color.FgMagenta,
	LevelUnknown: color.FgWhite,
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithLevel drops messages below min.
func WithLevel(min Level) ConsoleOption {
	return func(c *Console) {
		c.min = min
	}
}

// WithProgName sets the program name printed before each message.
func WithProgName(name string) ConsoleOption {
	return func(c *Console) {
		c.prog = name
	}
}

// WithColor forces colored severity labels on or off.
func WithColor(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.color = enabled
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ConsoleOption {
	return func(c *Console) {
		c.now = now
	}
}

// Console writes human-readable lines to an io.Writer.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	min    Level
	prog   string
	color  bool
	now    func() time.Time
	pid    int
	paints map[Level]*color.Color
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		w:   w,
		min: LevelDebug,
		now: time.Now,
		pid: os.Getpid(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.color {
		c.paints = make(map[Level]*color.Color, len(labelColors))
		for level, attr := range labelColors {
			paint := color.New(attr, color.Bold)
			paint.EnableColor()
			c.paints[level] = paint
		}
	}
	return c
}

// ConsoleTarget resolves "stdout" or "stderr" to the process stream.
func ConsoleTarget(name string) (io.Writer, error) {
	switch name {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return nil, fmt.Errorf("%w: %q (use stdout or stderr)", ErrInvalidTarget, name)
	}
}

func (c *Console) Debug(msg string)   { c.log(LevelDebug, msg) }
func (c *Console) Info(msg string)    { c.log(LevelInfo, msg) }
func (c *Console) Warn(msg string)    { c.log(LevelWarn, msg) }
func (c *Console) Error(msg string)   { c.log(LevelError, msg) }
func (c *Console) Fatal(msg string)   { c.log(LevelFatal, msg) }
func (c *Console) Unknown(msg string) { c.log(LevelUnknown, msg) }

func (c *Console) log(level Level, msg string) {
	if level < c.min {
		return
	}

	label := fmt.Sprintf("%5s", labels[level])
	if paint, ok := c.paints[level]; ok {
		label = paint.Sprint(label)
	}
	line := fmt.Sprintf("%c, [%s #%d] %s -- %s: %s\n",
		labels[level][0], c.now().Format(consoleTimeFormat), c.pid, label, c.prog, msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, line)
}
