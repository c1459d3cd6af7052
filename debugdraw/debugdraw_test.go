package debugdraw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrNop(t *testing.T) {
	assert.Equal(t, Nop{}, OrNop(nil))

	recorder := &Recorder{}
	assert.Same(t, recorder, OrNop(recorder))
}

func TestRecorder(t *testing.T) {
	recorder := &Recorder{}
	style := Style{Color: Cyan, Duration: time.Second}

	recorder.Point(mgl64.Vec3{1, 2, 3}, 0.5, style)
	recorder.Line(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, style)
	recorder.Triangle(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, style)

	primitives := recorder.Primitives()
	require.Len(t, primitives, 3)
	assert.Equal(t, Primitive{Kind: KindPoint, Vertices: [3]mgl64.Vec3{{1, 2, 3}}, Count: 1, Radius: 0.5, Style: style}, primitives[0])
	assert.Equal(t, KindLine, primitives[1].Kind)
	assert.Equal(t, 2, primitives[1].Count)
	assert.Equal(t, KindTriangle, primitives[2].Kind)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, primitives[2].Vertices[2])

	// the returned slice is a copy
	primitives[0].Radius = 10
	assert.Equal(t, 0.5, recorder.Primitives()[0].Radius)

	recorder.Reset()
	assert.Empty(t, recorder.Primitives())
}

func TestRecorderConcurrentUse(t *testing.T) {
	recorder := &Recorder{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				recorder.Point(mgl64.Vec3{}, 1, Style{})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, recorder.Primitives(), 800)
}

func TestLogger(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug}))

	drawer := NewLogger(logger, slog.LevelDebug)
	drawer.Line(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 3}, Style{Color: Red, OnTop: true})

	var record map[string]any
	require.NoError(t, json.Unmarshal(output.Bytes(), &record))
	assert.Equal(t, "debugdraw line", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, []any{1.0, 2.0, 3.0}, record["end"])

	style, ok := record["style"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, style["onTop"])
}

func TestLoggerBelowLevel(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{Level: slog.LevelInfo}))

	NewLogger(logger, slog.LevelDebug).Point(mgl64.Vec3{}, 1, Style{})
	assert.Zero(t, output.Len())
}
