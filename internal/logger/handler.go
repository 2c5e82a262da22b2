package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var levelBadges = map[slog.Level]func(format string, a ...interface{}) string{
	slog.LevelDebug: color.HiBlackString,
	slog.LevelInfo:  color.CyanString,
	slog.LevelWarn:  color.YellowString,
	slog.LevelError: color.RedString,
}

// attrColors picks the color of well-known attribute keys. Anything else is
// dimmed.
var attrColors = map[string]func(format string, a ...interface{}) string{
	"error":       color.RedString,
	"status":      color.GreenString,
	"dish_type":   color.GreenString,
	"mode":        color.GreenString,
	"path":        color.BlueString,
	"duration_ms": color.MagentaString,
}

// PrettyHandler is a slog.Handler that prints one colored line per record.
// Handlers derived with WithAttrs or WithGroup share the writer lock, so the
// probe and the submission can log from separate goroutines.
type PrettyHandler struct {
	opts *slog.HandlerOptions
	mu   *sync.Mutex
	w    io.Writer

	// prefix holds the attributes bound by WithAttrs, already rendered.
	prefix []string
	group  string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: opts, mu: &sync.Mutex{}, w: w}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelWarn
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	parts := make([]string, 0, 2+len(h.prefix)+r.NumAttrs())
	parts = append(parts, badge(r.Level), r.Message)
	parts = append(parts, h.prefix...)
	r.Attrs(func(a slog.Attr) bool {
		parts = h.appendAttr(parts, h.group, a)
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			parts = append(parts, color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.prefix = append([]string(nil), h.prefix...)
	for _, a := range attrs {
		next.prefix = h.appendAttr(next.prefix, h.group, a)
	}
	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = joinKey(h.group, name)
	return &next
}

// appendAttr renders a as key=value, flattening groups into dotted keys and
// dropping empty attributes.
func (h *PrettyHandler) appendAttr(parts []string, group string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		var groups []string
		if group != "" {
			groups = strings.Split(group, ".")
		}
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return parts
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := group
		if a.Key != "" {
			sub = joinKey(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			parts = h.appendAttr(parts, sub, ga)
		}
		return parts
	}

	key := joinKey(group, a.Key)
	paint, ok := attrColors[a.Key]
	if !ok {
		paint = color.HiBlackString
	}
	return append(parts, paint("%s=%s", key, quoteIfNeeded(a.Value.String())))
}

func badge(level slog.Level) string {
	label := "[" + level.String() + "]"
	if len(label) < 7 {
		label += strings.Repeat(" ", 7-len(label))
	}
	if paint, ok := levelBadges[level]; ok {
		return paint("%s", label)
	}
	return label
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
