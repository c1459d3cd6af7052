// Package debugdraw is the optional visualization hook of the geometry
// algorithms.
//
// Algorithms that can show their intermediate state (the MPR portal, support
// points) take a Drawer. The default is Nop, so nothing is drawn and no global
// state is involved. Logger forwards every primitive to a slog.Logger, Recorder
// keeps them in memory for inspection.
package debugdraw

import (
	"context"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, A: 255}
	Green   = color.RGBA{G: 255, A: 255}
	Blue    = color.RGBA{B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, A: 255}
	Cyan    = color.RGBA{G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, B: 255, A: 255}
	Pink    = color.RGBA{R: 255, G: 192, B: 203, A: 255}
)

// Style holds the presentation flags shared by every primitive
type Style struct {
	Color color.RGBA
	// Duration is how long the primitive stays visible, zero for one frame
	Duration time.Duration
	// OnTop draws the primitive over the scene geometry
	OnTop bool
}

// Drawer receives debug primitives
type Drawer interface {
	Point(position mgl64.Vec3, radius float64, style Style)
	Line(start, end mgl64.Vec3, style Style)
	Triangle(a, b, c mgl64.Vec3, style Style)
}

// Nop discards every primitive
type Nop struct{}

func (Nop) Point(mgl64.Vec3, float64, Style) {}

func (Nop) Line(mgl64.Vec3, mgl64.Vec3, Style) {}

func (Nop) Triangle(_, _, _ mgl64.Vec3, _ Style) {}

// OrNop returns drawer, or Nop when drawer is nil
func OrNop(drawer Drawer) Drawer {
	if drawer == nil {
		return Nop{}
	}
	return drawer
}

// Logger writes every primitive as a structured log record
type Logger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogger logs primitives on logger at the given level.
// A nil logger uses slog.Default().
func NewLogger(logger *slog.Logger, level slog.Level) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger, level: level}
}

func (l *Logger) Point(position mgl64.Vec3, radius float64, style Style) {
	l.log("point", slog.Any("position", position), slog.Float64("radius", radius), styleAttr(style))
}

func (l *Logger) Line(start, end mgl64.Vec3, style Style) {
	l.log("line", slog.Any("start", start), slog.Any("end", end), styleAttr(style))
}

func (l *Logger) Triangle(a, b, c mgl64.Vec3, style Style) {
	l.log("triangle", slog.Any("a", a), slog.Any("b", b), slog.Any("c", c), styleAttr(style))
}

func (l *Logger) log(msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(context.Background(), l.level, "debugdraw "+msg, attrs...)
}

func styleAttr(style Style) slog.Attr {
	return slog.Group("style",
		slog.Any("color", style.Color),
		slog.Duration("duration", style.Duration),
		slog.Bool("onTop", style.OnTop),
	)
}

// Kind identifies a recorded primitive
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindTriangle
)

// Primitive is one recorded draw call. Only the first Count vertices are used.
type Primitive struct {
	Kind     Kind
	Vertices [3]mgl64.Vec3
	Count    int
	Radius   float64
	Style    Style
}

// Recorder stores primitives in memory. It is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	primitives []Primitive
}

func (r *Recorder) Point(position mgl64.Vec3, radius float64, style Style) {
	r.add(Primitive{Kind: KindPoint, Vertices: [3]mgl64.Vec3{position}, Count: 1, Radius: radius, Style: style})
}

func (r *Recorder) Line(start, end mgl64.Vec3, style Style) {
	r.add(Primitive{Kind: KindLine, Vertices: [3]mgl64.Vec3{start, end}, Count: 2, Style: style})
}

func (r *Recorder) Triangle(a, b, c mgl64.Vec3, style Style) {
	r.add(Primitive{Kind: KindTriangle, Vertices: [3]mgl64.Vec3{a, b, c}, Count: 3, Style: style})
}

func (r *Recorder) add(p Primitive) {
	r.mu.Lock()
	r.primitives = append(r.primitives, p)
	r.mu.Unlock()
}

// Primitives returns a copy of the recorded primitives
func (r *Recorder) Primitives() []Primitive {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Primitive(nil), r.primitives...)
}

// Reset drops the recorded primitives
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.primitives = r.primitives[:0]
	r.mu.Unlock()
}
