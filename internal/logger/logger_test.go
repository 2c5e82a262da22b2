package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		verbose bool
		log     func(ctx context.Context)
		want    string
	}{
		{
			name: "warn is printed by default",
			log:  func(ctx context.Context) { Warn(ctx, "service probe failed") },
			want: "[WARN]  service probe failed",
		},
		{
			name: "info is hidden by default",
			log:  func(ctx context.Context) { Info(ctx, "submitting recipe") },
			want: "",
		},
		{
			name:    "info is printed in verbose mode",
			verbose: true,
			log:     func(ctx context.Context) { Info(ctx, "submitting recipe") },
			want:    "[INFO]  submitting recipe",
		},
		{
			name:  "debug is printed in debug mode",
			debug: true,
			log:   func(ctx context.Context) { Debug(ctx, "payload built") },
			want:  "[DEBUG] payload built",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			InitializeWithWriter(&buf, tt.debug, tt.verbose)

			tt.log(context.Background())

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, false, false)

	ctx := With(context.Background(), "dish_type", "soup")
	Error(ctx, "submission failed", errors.New("boom"), "status", 500)

	out := buf.String()
	assert.Contains(t, out, "[ERROR] submission failed")
	assert.Contains(t, out, "dish_type=soup")
	assert.Contains(t, out, "status=500")
	assert.Contains(t, out, "error=boom")
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(h).WithGroup("probe").Info("checked", "mode", "liveness")

	assert.Contains(t, buf.String(), "probe.mode=liveness")
}

func TestPrettyHandler_GroupOnlyPrefixesLaterAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(h).With("dish_type", "pizza").WithGroup("availability").Info("checked", "status", 401)

	out := buf.String()
	assert.Contains(t, out, "dish_type=pizza")
	assert.NotContains(t, out, "availability.dish_type")
	assert.Contains(t, out, "availability.status=401")
}

func TestPrettyHandler_FlattensGroupValues(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(h).Info("sent", slog.Group("response", "status", 200, "path", "dishes"))

	assert.Contains(t, buf.String(), "response.status=200 response.path=dishes")
}

func TestPrettyHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(h).Info("draft", "name", "Tomato soup", "empty", "")

	assert.Contains(t, buf.String(), `name="Tomato soup"`)
	assert.Contains(t, buf.String(), `empty=""`)
}

func TestPrettyHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "secret" {
				return slog.Attr{}
			}
			return a
		},
	})

	slog.New(h).Info("config", "secret", "hunter2", "mode", "liveness")

	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "mode=liveness")
}

func TestPrettyHandler_ConcurrentLinesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	base := slog.New(h)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base.With("worker", i).Info("tick")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[INFO]  tick worker="), line)
	}
}

func TestSilence(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, true, true)
	Silence()

	Error(context.Background(), "hidden", nil)

	assert.Empty(t, buf.String())
}
