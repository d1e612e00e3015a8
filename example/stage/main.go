// Package main drops a few spheres on a small stage of ramps and blocks and reports where they settle.
package main

import (
	"encoding/json"
	"log"
	"math"
	"os"

	"github.com/akmonengine/slide"
	"github.com/akmonengine/slide/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagTicks   = "ticks"
	flagWorkers = "workers"
	flagConfig  = "config"
	flagCache   = "cache"
	flagVerbose = "verbose"
)

func main() {
	app := &cli.App{
		Name:  "stage",
		Usage: "simulate spheres rolling on a static collision stage",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  flagTicks,
				Value: 300,
				Usage: "number of ticks to simulate",
			},
			&cli.IntFlag{
				Name:  flagWorkers,
				Value: slide.DEFAULT_WORKERS,
				Usage: "goroutines resolving bodies",
			},
			&cli.StringFlag{
				Name:  flagConfig,
				Usage: "JSON file overriding the solver config",
			},
			&cli.BoolFlag{
				Name:  flagCache,
				Usage: "memoize collision queries",
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: "log every step",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool(flagVerbose))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	config, err := loadConfig(c.String(flagConfig))
	if err != nil {
		return err
	}

	mesh, err := buildStage(config, logger)
	if err != nil {
		return err
	}

	var collider slide.Collider = mesh
	var cache *slide.Cache
	if c.Bool(flagCache) {
		cache = slide.NewCache(mesh, config.CacheSize)
		collider = cache
	}

	world := slide.NewWorld(collider, mgl64.Vec3{0, 0, -0.0025}, logger)
	world.GroundProbe = config.GroundProbe
	world.Workers = c.Int(flagWorkers)

	world.Events.Subscribe(slide.GROUND_ENTER, func(event slide.Event) {
		body := event.(slide.GroundEnterEvent).Body
		logger.Info("landed", zap.Any("body", body.Id), zap.Uint64("tick", world.Ticks()), zap.Float64s("position", body.Position[:]))
	})
	world.Events.Subscribe(slide.GROUND_EXIT, func(event slide.Event) {
		body := event.(slide.GroundExitEvent).Body
		logger.Info("airborne", zap.Any("body", body.Id), zap.Uint64("tick", world.Ticks()))
	})

	spawns := []mgl64.Vec3{
		{-3.5, -3.5, 3},   // onto the first block
		{-1, -3.5, 2},     // onto the slope
		{1.2, 0.5, 1},     // onto the tilted roof
		{6, 6, 0.5},       // flat floor
		{-7.3, -3.5, 0.5}, // next to the tall block
	}
	for i, spawn := range spawns {
		body := actor.NewBody(spawn, 0.15, actor.SolverRepel)
		body.Id = i
		world.AddBody(body)
	}

	// walks up the slope onto the first block
	player := actor.NewBody(mgl64.Vec3{8, -3.5, 0.15 + config.Skin}, 0.15, actor.SolverCollide)
	player.Id = "player"
	player.Velocity = mgl64.Vec3{-0.05, 0.0, 0}
	world.AddBody(player)

	ticks := c.Int(flagTicks)
	for range ticks {
		world.Step()
	}

	for _, body := range world.Bodies {
		logger.Info("settled",
			zap.Any("body", body.Id),
			zap.Float64s("position", body.Position[:]),
			zap.Bool("grounded", body.Grounded),
		)
	}
	if cache != nil {
		hits, misses := cache.Stats()
		logger.Info("cache", zap.Uint64("hits", hits), zap.Uint64("misses", misses))
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}

func loadConfig(path string) (slide.Config, error) {
	if path == "" {
		return slide.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return slide.Config{}, errors.Wrapf(err, "reading config %q", path)
	}

	var attributes map[string]any
	if err := json.Unmarshal(data, &attributes); err != nil {
		return slide.Config{}, errors.Wrapf(err, "parsing config %q", path)
	}

	return slide.ParseConfig(attributes)
}

// buildStage lays out a floor, two blocks, a slope up to the first block and a tilted roof
func buildStage(config slide.Config, logger *zap.Logger) (*slide.Mesh, error) {
	mesh, err := slide.NewMesh(config, logger)
	if err != nil {
		return nil, err
	}

	b := &builder{mesh: mesh}
	b.quad(
		mgl64.Vec3{-10, -10, 0},
		mgl64.Vec3{10, -10, 0},
		mgl64.Vec3{10, 10, 0},
		mgl64.Vec3{-10, 10, 0})
	b.box(-5, -5, 0, -2, -2, 1)
	b.box(-7, -5, 0, -5, -2, 2)
	b.quad(
		mgl64.Vec3{0, -5, 0},
		mgl64.Vec3{0, -2, 0},
		mgl64.Vec3{-2, -2, 1},
		mgl64.Vec3{-2, -5, 1})
	b.tri(
		mgl64.Vec3{0, -2, 0.5},
		mgl64.Vec3{2, -1, 0.75},
		mgl64.Vec3{1, 2, 0.5})
	b.tri(
		mgl64.Vec3{2, -1, 0.75},
		mgl64.Vec3{2, 2, 0.25},
		mgl64.Vec3{1, 2, 0.5})

	if b.err != nil {
		return nil, b.err
	}
	if err := mesh.Build(); err != nil {
		return nil, err
	}

	return mesh, nil
}

// tileSize matches the cells of the default 50x50 grid over the 20x20 stage. The grid only indexes a
// triangle around its vertices, so large faces are split into tiles no bigger than a cell.
const tileSize = 0.4

// builder triangulates primitive shapes into a mesh, keeping the first error
type builder struct {
	mesh *slide.Mesh
	err  error
}

func (b *builder) add(v1, v2, v3 mgl64.Vec3) {
	if b.err != nil {
		return
	}
	_, b.err = b.mesh.AddTriangle(v1, v2, v3)
}

// tri splits v1 v2 v3 into a regular grid of triangles with edges shorter than tileSize
func (b *builder) tri(v1, v2, v3 mgl64.Vec3) {
	longest := math.Max(v2.Sub(v1).Len(), math.Max(v3.Sub(v2).Len(), v1.Sub(v3).Len()))
	n := max(1, int(math.Ceil(longest/tileSize)))

	u := v2.Sub(v1).Mul(1 / float64(n))
	v := v3.Sub(v1).Mul(1 / float64(n))
	at := func(i, j int) mgl64.Vec3 {
		return v1.Add(u.Mul(float64(i))).Add(v.Mul(float64(j)))
	}

	for i := 0; i < n; i++ {
		for j := 0; i+j < n; j++ {
			b.add(at(i, j), at(i+1, j), at(i, j+1))
			if i+j+1 < n {
				b.add(at(i+1, j), at(i+1, j+1), at(i, j+1))
			}
		}
	}
}

func (b *builder) quad(v1, v2, v3, v4 mgl64.Vec3) {
	b.tri(v1, v2, v3)
	b.tri(v1, v3, v4)
}

func (b *builder) box(x1, y1, z1, x2, y2, z2 float64) {
	// bottom face omitted: it rests on the floor
	b.quad(mgl64.Vec3{x1, y1, z2}, mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x2, y2, z2}, mgl64.Vec3{x1, y2, z2})
	b.quad(mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y1, z1}, mgl64.Vec3{x2, y1, z2}, mgl64.Vec3{x1, y1, z2})
	b.quad(mgl64.Vec3{x2, y1, z1}, mgl64.Vec3{x2, y2, z1}, mgl64.Vec3{x2, y2, z2}, mgl64.Vec3{x2, y1, z2})
	b.quad(mgl64.Vec3{x2, y2, z1}, mgl64.Vec3{x1, y2, z1}, mgl64.Vec3{x1, y2, z2}, mgl64.Vec3{x2, y2, z2})
	b.quad(mgl64.Vec3{x1, y2, z1}, mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x1, y1, z2}, mgl64.Vec3{x1, y2, z2})
}
