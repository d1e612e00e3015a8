package slide

import (
	"github.com/akmonengine/slide/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// Collider is the environment a World resolves its bodies against: a *Mesh, or a *Cache in front of one
type Collider interface {
	CollideAndSlide(prev, pos mgl64.Vec3, radius float64) Resolution
	Repel(prev, pos mgl64.Vec3, radius float64) Resolution
	RepelAndSlide(prev, pos mgl64.Vec3, radius float64) Resolution
	Grounded(pos mgl64.Vec3, radius float64, down mgl64.Vec3, distance float64) bool
}

type World struct {
	// List of all moving bodies in the world
	Bodies []*actor.Body
	// Static environment, shared read-only by every body
	Collider Collider
	// Gravity acceleration, added to each body's velocity once per tick
	Gravity mgl64.Vec3
	// GroundProbe is the distance below a body still counted as ground
	GroundProbe float64
	Workers     int

	Events Events
	Logger *zap.Logger

	ticks uint64
}

// NewWorld creates an empty world over collider
func NewWorld(collider Collider, gravity mgl64.Vec3, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &World{
		Collider:    collider,
		Gravity:     gravity,
		GroundProbe: DEFAULT_GROUND_PROBE,
		Workers:     DEFAULT_WORKERS,
		Events:      NewEvents(),
		Logger:      logger,
	}
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step advances every body by one tick
func (w *World) Step() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: integrate and resolve each body against the static environment.
	// Bodies never collide with each other and the collider is read-only.
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.Integrate(w.Gravity)
		w.resolve(body)
	})

	// Phase 2: events, sequential
	w.Events.recordContacts(w.Bodies)
	w.Events.flush()

	w.ticks++
	w.Logger.Debug("world step", zap.Uint64("tick", w.ticks), zap.Int("bodies", len(w.Bodies)))
}

// Ticks returns the number of steps done
func (w *World) Ticks() uint64 {
	return w.ticks
}

func (w *World) down() mgl64.Vec3 {
	if w.Gravity.Len() == 0 {
		return mgl64.Vec3{}
	}
	return w.Gravity.Normalize()
}

func (w *World) resolve(body *actor.Body) {
	switch body.Solver {
	case actor.SolverCollide:
		w.resolveCollide(body)
	default:
		w.resolveRepel(body)
	}
}

// resolveRepel falls, slides horizontally, then applies the pending impulse
func (w *World) resolveRepel(body *actor.Body) {
	down := w.down()
	body.PreviousPosition = body.Position

	vertical := down.Mul(body.Velocity.Dot(down))
	solved := w.Collider.Repel(body.Position, body.Position.Add(vertical), body.Radius)
	body.Position = solved.Position
	colliding := solved.Collided

	solved = w.Collider.RepelAndSlide(body.Position, body.Position.Add(body.Velocity.Sub(vertical)), body.Radius)
	body.Position = solved.Position
	colliding = colliding || solved.Collided

	body.Velocity = body.Position.Sub(body.PreviousPosition)

	if body.InstantVelocity.Len() != 0 {
		solved = w.Collider.Repel(body.Position, body.Position.Add(body.InstantVelocity), body.Radius)
		body.Position = solved.Position
		colliding = colliding || solved.Collided
	}
	body.InstantVelocity = mgl64.Vec3{}

	body.Colliding = colliding
	body.Grounded = w.Collider.Grounded(body.Position, body.Radius, down, w.GroundProbe)
}

// resolveCollide sweeps the whole velocity, keeps the intended tangential speed and takes the
// vertical speed from the actual motion
func (w *World) resolveCollide(body *actor.Body) {
	down := w.down()
	body.PreviousPosition = body.Position

	solved := w.Collider.CollideAndSlide(body.Position, body.Position.Add(body.Velocity.Add(body.InstantVelocity)), body.Radius)
	body.Position = solved.Position
	body.InstantVelocity = mgl64.Vec3{}

	moved := body.Position.Sub(body.PreviousPosition).Dot(down)
	body.Velocity = body.Velocity.Sub(down.Mul(body.Velocity.Dot(down))).Add(down.Mul(moved))

	body.Colliding = solved.Collided
	body.Grounded = w.Collider.Grounded(body.Position, body.Radius, down, w.GroundProbe)
}
