package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"brdf-viewer/shading"
)

const (
	DefaultStep       = 0.05
	DefaultScaleSpeed = 1.1
)

// DefaultRotationSpeed is the rotation applied per key event, in radians.
var DefaultRotationSpeed = mgl32.DegToRad(5)

// Pending accumulates transform edits between two frames.
type Pending struct {
	Rotation mgl32.Vec3 // radians per axis
	Scale    float32    // multiplicative
}

// NewPending returns a neutral accumulator.
func NewPending() Pending {
	return Pending{Scale: 1}
}

// Reset returns the accumulator to its neutral state.
func (p *Pending) Reset() {
	p.Rotation = mgl32.Vec3{}
	p.Scale = 1
}

// IsNeutral reports whether applying p would leave a transform unchanged.
func (p *Pending) IsNeutral() bool {
	return p.Rotation == (mgl32.Vec3{}) && p.Scale == 1
}

// Target is the state a Controller edits.
type Target interface {
	Pending() *Pending
	SelectObject(index int)
	Parameters() *shading.Params
	RequestQuit()
}

// Controller applies decoded key events to a Target.
type Controller struct {
	RotationSpeed float32
	ScaleSpeed    float32
	// Step is the coefficient increment; roughness moves by half of it.
	Step float32

	target Target
}

func NewController(target Target) *Controller {
	return &Controller{
		RotationSpeed: DefaultRotationSpeed,
		ScaleSpeed:    DefaultScaleSpeed,
		Step:          DefaultStep,
		target:        target,
	}
}

// Handle decodes ev and applies it. The decoded command is returned so the
// caller can react to parameter edits.
func (c *Controller) Handle(ev Event) Command {
	cmd := Decode(ev)
	c.Apply(cmd)
	return cmd
}

// Apply executes an already decoded command.
func (c *Controller) Apply(cmd Command) {
	switch cmd.Op {
	case OpQuit:
		c.target.RequestQuit()
	case OpSelectModel:
		c.target.SelectObject(cmd.Index)
	case OpRotate:
		c.target.Pending().Rotation[cmd.Axis] += cmd.Sign * c.RotationSpeed
	case OpScale:
		pending := c.target.Pending()
		if cmd.Sign > 0 {
			pending.Scale *= c.ScaleSpeed
		} else {
			pending.Scale /= c.ScaleSpeed
		}
	case OpToggleDistribution:
		c.target.Parameters().ToggleDistribution()
	case OpFlipDistribution:
		c.target.Parameters().FlipDistribution()
	case OpToggleTerm:
		c.target.Parameters().Toggle(cmd.Term)
	case OpAdjust:
		step := c.Step
		if cmd.Field == shading.FieldRoughness {
			step /= 2
		}
		c.target.Parameters().ClampAdd(cmd.Field, cmd.Sign*step)
	case OpSelectFresnel:
		c.target.Parameters().SelectFresnelPreset(cmd.Index)
	}
}
