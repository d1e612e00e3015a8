package actor

import "github.com/go-gl/mathgl/mgl64"

// SolverType selects how a body is resolved against the environment every tick
type SolverType int

const (
	// SolverRepel bodies fall with gravity and are pushed out of the ground every tick.
	// They tolerate starting the tick already touching geometry (e.g. rolling wheels)
	SolverRepel SolverType = iota

	// SolverCollide bodies sweep their whole motion with collide-and-slide
	// (e.g. a player capsule walking against walls)
	SolverCollide
)

// Body is a moving sphere. The collision engine never mutates a Body itself: a World step
// computes the corrected position and assigns it.
type Body struct {
	Id any

	// Spatial properties
	PreviousPosition mgl64.Vec3
	Position         mgl64.Vec3
	Radius           float64

	// Velocity is the displacement per tick
	Velocity mgl64.Vec3
	// InstantVelocity is applied once, after the regular motion, then reset (jumps, knock-backs)
	InstantVelocity mgl64.Vec3

	Solver SolverType

	// Contact state after the last step
	Grounded  bool
	Colliding bool
}

// NewBody creates a body at rest
func NewBody(position mgl64.Vec3, radius float64, solver SolverType) *Body {
	return &Body{
		PreviousPosition: position,
		Position:         position,
		Radius:           radius,
		Solver:           solver,
	}
}

// Integrate adds one tick of gravity acceleration to the velocity
func (b *Body) Integrate(gravity mgl64.Vec3) {
	b.Velocity = b.Velocity.Add(gravity)
}

// AddImpulse queues a one-tick displacement, resolved after the regular motion
func (b *Body) AddImpulse(displacement mgl64.Vec3) {
	b.InstantVelocity = b.InstantVelocity.Add(displacement)
}

// Displacement returns the motion of the last step
func (b *Body) Displacement() mgl64.Vec3 {
	return b.Position.Sub(b.PreviousPosition)
}
