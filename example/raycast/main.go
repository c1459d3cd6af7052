package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/config"
	"github.com/akmonengine/quill/debugdraw"
	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/mesh"
	"github.com/akmonengine/quill/mpr"
	"github.com/akmonengine/quill/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configPath := flag.String("config", "", "TOML file holding the tolerances")
	debug := flag.Bool("debug", false, "log the MPR portals")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("loading config", "error", err)
			os.Exit(1)
		}
	}

	if err := castAgainstMesh(logger); err != nil {
		logger.Error("mesh cast", "error", err)
		os.Exit(1)
	}
	analyticRays(logger, cfg)
	boxContacts(logger, cfg)
	convexContacts(logger, cfg, *debug)
	sceneContacts(logger)
}

// castAgainstMesh tessellates a box and fires a fan of rays at it
func castAgainstMesh(logger *slog.Logger) error {
	solid, err := sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0)
	if err != nil {
		return err
	}
	buffer, err := mesh.FromSDF(solid, 16)
	if err != nil {
		return err
	}
	logger.Info("tessellated box", "triangles", buffer.TriangleCount)

	rays := make([]intersection.Ray, 0, 16)
	for i := 0; i < 16; i++ {
		angle := 2 * math.Pi * float64(i) / 16
		start := mgl64.Vec3{5 * math.Cos(angle), 0.3, 5 * math.Sin(angle)}
		rays = append(rays, intersection.Ray{Start: start, Direction: start.Mul(-1).Normalize()})
	}

	hits, err := quill.CastRays(runtime.NumCPU(), buffer, rays, mesh.Options{BackfaceCulling: true})
	if err != nil {
		return err
	}
	for i, hit := range hits {
		if !hit.Type.Positive() {
			logger.Info("ray missed", "ray", i)
			continue
		}
		logger.Info("ray hit", "ray", i, "triangle", hit.Triangle, "t", hit.Point.T(), "normal", hit.Normal)
	}
	return nil
}

func analyticRays(logger *slog.Logger, cfg config.Config) {
	ray := intersection.Ray{Start: mgl64.Vec3{0, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}

	typ, interval := intersection.RaySphere(ray, shape.Sphere{Radius: 1})
	logger.Info("ray vs sphere", "type", typ, "min", interval.Min, "max", interval.Max)

	capsule := shape.Capsule{PointA: mgl64.Vec3{0, -2, 0}, PointB: mgl64.Vec3{0, 2, 0}, Radius: 1}
	capsuleRay := intersection.Ray{Start: mgl64.Vec3{5, 3, 0}, Direction: mgl64.Vec3{-1, 0, 0}}
	typ, hit := capsuleRay.Point(intersection.RayCapsule(capsuleRay, capsule))
	logger.Info("ray vs capsule", "type", typ, "point", hit.Points[0])

	torus := shape.Torus{Axis: mgl64.Vec3{0, 1, 0}, RingRadius: 2, TubeRadius: 0.5}
	torusRay := intersection.Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}
	typ, interval = intersection.RayTorus(torusRay, torus)
	logger.Info("ray vs torus", "type", typ, "min", interval.Min, "max", interval.Max)

	triangle := shape.Triangle{P0: mgl64.Vec3{-1, -1, 0}, P1: mgl64.Vec3{1, -1, 0}, P2: mgl64.Vec3{0, 1, 0}}
	typ, interval = cfg.Ray.RayTriangle(ray, triangle)
	logger.Info("ray vs triangle", "type", typ, "t", interval.Min, "normal", interval.Normal[0])
}

func boxContacts(logger *slog.Logger, cfg config.Config) {
	a := shape.NewOBB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	b := shape.NewOBB(mgl64.Vec3{1.5, 0.2, 0}, mgl64.Vec3{1, 1, 1}, mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0}))

	var manifold intersection.Manifold
	typ := cfg.SAT.ObbObb(a, b, &manifold)
	logger.Info("box vs box", "type", typ, "normal", manifold.Normal, "points", manifold.PointCount)
	if !typ.Positive() {
		return
	}
	for i, contact := range manifold.Contacts() {
		logger.Info("contact", "index", i, "onA", contact.Points[0], "onB", contact.Points[1], "depth", contact.Depth)
	}
}

func convexContacts(logger *slog.Logger, cfg config.Config, debug bool) {
	engine := mpr.New(cfg.MPR)
	recorder := &debugdraw.Recorder{}
	engine.Debug = recorder
	if debug {
		engine.Debug = debugdraw.NewLogger(logger, slog.LevelDebug)
	}

	sphere := shape.Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1}
	capsule := shape.Capsule{PointA: mgl64.Vec3{1.5, -1, 0}, PointB: mgl64.Vec3{1.5, 1, 0}, Radius: 0.75}

	var manifold intersection.Manifold
	typ := engine.Test(sphere, capsule, &manifold)
	logger.Info("sphere vs capsule", "type", typ, "state", engine.State(), "normal", manifold.Normal, "depth", manifold.Points[0].Depth)
	if !debug {
		logger.Info("portal recorded", "primitives", len(recorder.Primitives()))
		recorder.Reset()
	}

	moving := shape.NewMovingSupportShape(shape.Sphere{Center: mgl64.Vec3{-5, 0, 0}, Radius: 0.5}, mgl64.Vec3{10, 0, 0}, mgl64.QuatIdent())
	typ = engine.SweptTest(moving, shape.NewSupportShape(sphere))
	logger.Info("swept sphere", "type", typ)

	pairs := []quill.Pair{
		{A: sphere, B: capsule},
		{A: sphere, B: shape.Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 1}},
	}
	for i, result := range quill.TestPairsWithConfig(runtime.NumCPU(), pairs, cfg.MPR) {
		logger.Info("pair", "index", i, "type", result.Type, "points", result.Manifold.PointCount)
	}
}

// sceneContacts drops a few shapes on the ground plane and streams their
// contacts through the narrow phase
func sceneContacts(logger *slog.Logger) {
	ground := shape.NewPlane(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{})
	crate := shape.NewOBB(mgl64.Vec3{0, 0.45, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.QuatRotate(0.2, mgl64.Vec3{0, 1, 0}))
	ball := shape.Sphere{Center: mgl64.Vec3{0.9, 1.3, 0}, Radius: 0.5}
	pill := shape.Capsule{PointA: mgl64.Vec3{-2, 0.4, 0}, PointB: mgl64.Vec3{-1, 0.4, 0}, Radius: 0.45}

	candidates := make(chan quill.Candidate)
	go func() {
		defer close(candidates)
		for i, pair := range [][2]shape.Shape{
			{ground, crate},
			{ground, ball},
			{pill, ground},
			{crate, ball},
			{crate, pill},
		} {
			candidates <- quill.Candidate{ID: i, A: pair[0], B: pair[1]}
		}
	}()

	for contact := range quill.NarrowPhase(candidates, runtime.NumCPU()) {
		logger.Info("scene contact", "pair", contact.ID, "type", contact.Type, "normal", contact.Manifold.Normal, "points", contact.Manifold.PointCount)
	}
}
