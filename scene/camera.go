package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"brdf-viewer/shading"
)

// Camera is a fixed look-at camera with a perspective projection.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	FOV       float32 // vertical field of view in radians
	NearPlane float32
	FarPlane  float32
}

func NewCamera(eye, target mgl32.Vec3, fovDeg, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Eye:       eye,
		Target:    target,
		Up:        mgl32.Vec3{0, 1, 0},
		FOV:       mgl32.DegToRad(fovDeg),
		NearPlane: nearPlane,
		FarPlane:  farPlane,
	}
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.NearPlane, c.FarPlane)
}

// Position extracts the camera position from the inverse of the view matrix.
func (c *Camera) Position() mgl32.Vec3 {
	return c.View().Inv().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// Environment bundles the camera matrices with lights for one frame.
func (c *Camera) Environment(aspect float32, lights []shading.Light) Environment {
	return Environment{
		View:           c.View(),
		Projection:     c.Projection(aspect),
		CameraPosition: c.Position(),
		Lights:         lights,
	}
}
